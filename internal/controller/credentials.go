package controller

import (
	"fmt"

	"github.com/flutsign/flutsign/internal/adapter"
	"github.com/flutsign/flutsign/internal/config"
	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

const minPasswordLength = 6

// ResolveKeystoreOptions builds the keystore options for a signing run.
// Credentials are taken from the configuration (which already folds in the
// conventional environment variables); anything still missing is collected
// interactively, or rejected in non-interactive mode.
func ResolveKeystoreOptions(cfg *config.Config, prompt CredentialPrompt, log logging.Logger) (adapter.KeystoreOptions, error) {
	opts := adapter.KeystoreOptions{
		Path:          m.Path(cfg.Keystore.Path),
		Alias:         cfg.Keystore.Alias,
		StorePassword: cfg.Keystore.StorePassword,
		KeyPassword:   cfg.Keystore.KeyPassword,
		ValidityDays:  cfg.Keystore.ValidityDays,
		Overwrite:     cfg.Keystore.Overwrite,
		DName: adapter.DistinguishedName{
			CommonName:   cfg.Signer.Name,
			OrgUnit:      orDefault(cfg.Signer.OrgUnit, "Development"),
			Organization: orDefault(cfg.Signer.Organization, "Your Company"),
			Locality:     cfg.Signer.Locality,
			State:        cfg.Signer.State,
			Country:      orDefault(cfg.Signer.Country, "US"),
		},
	}

	if cfg.NonInteractive {
		if opts.StorePassword == "" {
			return opts, fmt.Errorf("keystore password is required in non-interactive mode, set KEYSTORE_PASSWORD")
		}

		if opts.KeyPassword == "" {
			opts.KeyPassword = opts.StorePassword
		}

		return opts, nil
	}

	var err error

	if opts.StorePassword == "" {
		opts.StorePassword, err = prompt.PromptSecret("Enter keystore password:")
		if err != nil {
			return opts, err
		}

		if len(opts.StorePassword) < minPasswordLength {
			log.Warnf("keystore password is shorter than %d characters, keytool may reject it", minPasswordLength)
		}
	}

	if opts.KeyPassword == "" {
		opts.KeyPassword, err = prompt.PromptSecret("Enter key password (empty to reuse the keystore password):")
		if err != nil {
			return opts, err
		}

		if opts.KeyPassword == "" {
			opts.KeyPassword = opts.StorePassword
		}
	}

	// Keystore generation needs a certificate subject; only prompt for the
	// fields keytool refuses to default.
	if opts.DName.CommonName == "" {
		opts.DName.CommonName, err = prompt.PromptString("Enter your name (CN):", "")
		if err != nil {
			return opts, err
		}
	}

	if opts.DName.Locality == "" {
		opts.DName.Locality, err = prompt.PromptString("Enter locality/city (L):", "")
		if err != nil {
			return opts, err
		}
	}

	if opts.DName.State == "" {
		opts.DName.State, err = prompt.PromptString("Enter state/province (ST):", "")
		if err != nil {
			return opts, err
		}
	}

	return opts, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
