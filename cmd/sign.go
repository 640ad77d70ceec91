package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flutsign/flutsign/internal/controller"
	"github.com/flutsign/flutsign/internal/domain"
	m "github.com/flutsign/flutsign/internal/model"
)

var signBuildType string
var signSkipBuild bool
var signNoVerify bool
var signUseExisting bool
var signConfigName string
var signReportsDir string

func init() {
	rootCmd.AddCommand(newSignCmd())
}

func newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Run the full signing pipeline",
		Long: `Sign runs the complete release signing pipeline against a Flutter
project: check external tools, generate or reuse a keystore, write the
key.properties file, patch the app-level Gradle build script, build the
release artifact and verify its signature.`,
		RunE: runSign,
	}

	cmd.Flags().StringVar(&signBuildType, "build-type", "", "artifact to build: apk or aab")
	cmd.Flags().BoolVar(&signSkipBuild, "skip-build", false, "stop after patching, do not run flutter build")
	cmd.Flags().BoolVar(&signNoVerify, "no-verify", false, "skip signature verification of the built artifact")
	cmd.Flags().BoolVar(&signUseExisting, "use-existing-keystore", false, "reuse the configured keystore instead of generating one")
	cmd.Flags().StringVar(&signConfigName, "name", "", "signing configuration name (default \"release\")")
	cmd.Flags().StringVar(&signReportsDir, "reports-dir", "", "directory to write a YAML run report into")

	return cmd
}

func runSign(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if signBuildType != "" {
		cfg.BuildType = signBuildType
	}

	if signSkipBuild {
		cfg.SkipBuild = true
	}

	if signNoVerify {
		cfg.Verify = false
	}

	if signUseExisting {
		cfg.Keystore.UseExisting = true
	}

	if signConfigName != "" {
		cfg.ConfigName = signConfigName
	}

	if signReportsDir != "" {
		cfg.ReportsDir = signReportsDir
	}

	log, err := commandLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	if cfg.Keystore.Path == "" {
		cfg.Keystore.Path = string(fs.JoinPath(cfg.ProjectPath, "android", "app", "upload-keystore.jks"))
	}

	opts, err := controller.ResolveKeystoreOptions(cfg, prompt, log)
	if err != nil {
		return err
	}

	report, err := getWorkflow(cfg, log).Sign(cmd.Context(), domain.SignArgs{
		ProjectRoot: m.Path(cfg.ProjectPath),
		Spec: m.SigningConfigSpec{
			Name:           cfg.ConfigName,
			PropertiesFile: cfg.PropertiesFile,
		},
		Keystore:     opts,
		SkipKeystore: cfg.Keystore.UseExisting,
		BuildType:    cfg.BuildType,
		SkipBuild:    cfg.SkipBuild,
		Verify:       cfg.Verify,
		ReportsDir:   m.Path(cfg.ReportsDir),
	})

	if displayErr := ui.DisplayReport(report); displayErr != nil {
		return displayErr
	}

	return err
}
