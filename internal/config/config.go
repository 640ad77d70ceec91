// Package config loads tool configuration from files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// KeystoreConfig holds keystore generation and lookup settings.
type KeystoreConfig struct {
	Path          string `mapstructure:"path"`
	Alias         string `mapstructure:"alias"`
	StorePassword string `mapstructure:"store_password"`
	KeyPassword   string `mapstructure:"key_password"`
	ValidityDays  int    `mapstructure:"validity_days"`
	UseExisting   bool   `mapstructure:"use_existing"`
	Overwrite     bool   `mapstructure:"overwrite"`
}

// SignerConfig holds the distinguished-name fields used when generating a
// new keystore.
type SignerConfig struct {
	Name         string `mapstructure:"name"`
	OrgUnit      string `mapstructure:"org_unit"`
	Organization string `mapstructure:"organization"`
	Locality     string `mapstructure:"locality"`
	State        string `mapstructure:"state"`
	Country      string `mapstructure:"country"`
}

// Config holds all configuration options for the tool.
type Config struct {
	// Project configuration
	ProjectPath    string `mapstructure:"project_path"`
	ConfigName     string `mapstructure:"config_name"`
	PropertiesFile string `mapstructure:"properties_file"`

	// Build configuration
	BuildType string `mapstructure:"build_type"` // "apk" or "aab"
	SkipBuild bool   `mapstructure:"skip_build"`
	Verify    bool   `mapstructure:"verify"`

	// FallbackDialect is the dialect assumed for build scripts with an
	// unrecognized extension. The permissive Groovy default mirrors the
	// historical behavior; callers can tighten it here.
	FallbackDialect string `mapstructure:"fallback_dialect"`

	NonInteractive bool   `mapstructure:"non_interactive"`
	ReportsDir     string `mapstructure:"reports_dir"`

	Keystore KeystoreConfig `mapstructure:"keystore"`
	Signer   SignerConfig   `mapstructure:"signer"`

	// Logging configuration
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log_file"`
}

// Default configuration values.
const (
	DefaultBuildType       = "apk"
	DefaultConfigName      = "release"
	DefaultPropertiesFile  = "key.properties"
	DefaultFallbackDialect = "groovy"
	DefaultKeystoreAlias   = "upload"
	DefaultValidityDays    = 25 * 365
	EnvPrefix              = "FLUTSIGN"
)

// Load reads configuration from the given file (optional), a .flutsign.yaml
// in the working directory, and FLUTSIGN_-prefixed environment variables.
// The credential environment variables KEYSTORE_PASSWORD, KEY_PASSWORD and
// STORE_ALIAS are honored for compatibility with CI setups.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".flutsign")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Every key is registered with a default so AutomaticEnv resolves it;
	// viper only consults the environment for keys it knows about.
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A named file that cannot be read is an error; a missing default
		// file is not.
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	applyCredentialEnv(config)

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project_path", ".")
	v.SetDefault("config_name", DefaultConfigName)
	v.SetDefault("properties_file", DefaultPropertiesFile)
	v.SetDefault("build_type", DefaultBuildType)
	v.SetDefault("skip_build", false)
	v.SetDefault("verify", true)
	v.SetDefault("fallback_dialect", DefaultFallbackDialect)
	v.SetDefault("non_interactive", false)
	v.SetDefault("reports_dir", "")
	v.SetDefault("keystore.path", "")
	v.SetDefault("keystore.alias", DefaultKeystoreAlias)
	v.SetDefault("keystore.store_password", "")
	v.SetDefault("keystore.key_password", "")
	v.SetDefault("keystore.validity_days", DefaultValidityDays)
	v.SetDefault("keystore.use_existing", false)
	v.SetDefault("keystore.overwrite", false)
	v.SetDefault("signer.name", "")
	v.SetDefault("signer.org_unit", "")
	v.SetDefault("signer.organization", "")
	v.SetDefault("signer.locality", "")
	v.SetDefault("signer.state", "")
	v.SetDefault("signer.country", "")
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")
}

// applyCredentialEnv fills credential fields from the conventional
// environment variables when the config file left them empty.
func applyCredentialEnv(config *Config) {
	if config.Keystore.StorePassword == "" {
		config.Keystore.StorePassword = os.Getenv("KEYSTORE_PASSWORD")
	}

	if config.Keystore.KeyPassword == "" {
		config.Keystore.KeyPassword = os.Getenv("KEY_PASSWORD")
	}

	if alias := os.Getenv("STORE_ALIAS"); alias != "" && config.Keystore.Alias == DefaultKeystoreAlias {
		config.Keystore.Alias = alias
	}
}
