package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/flutsign/flutsign/internal/model"
)

var patchConfigName string
var patchPropertiesFile string

func init() {
	rootCmd.AddCommand(newPatchCmd())
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Patch the Gradle build script only",
		Long: `Patch inserts the signing configuration into the app-level Gradle
build script without generating a keystore or building. The android/key.properties
file must already exist; a .bak backup of the script is written before it is
modified.`,
		RunE: runPatch,
	}

	cmd.Flags().StringVar(&patchConfigName, "name", "", "signing configuration name (default \"release\")")
	cmd.Flags().StringVar(&patchPropertiesFile, "properties-file", "", "credentials file, relative to android/ (default \"key.properties\")")

	return cmd
}

func runPatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if patchConfigName != "" {
		cfg.ConfigName = patchConfigName
	}

	if patchPropertiesFile != "" {
		cfg.PropertiesFile = patchPropertiesFile
	}

	log, err := commandLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	outcome, applied, err := getWorkflow(cfg, log).UpdateBuildScript(m.Path(cfg.ProjectPath), m.SigningConfigSpec{
		Name:           cfg.ConfigName,
		PropertiesFile: cfg.PropertiesFile,
	})
	if err != nil {
		return err
	}

	if !applied {
		log.Warnf("build script left untouched, write %s first (or run `flutsign sign`)", cfg.PropertiesFile)
		return nil
	}

	return ui.DisplayOutcome(outcome)
}
