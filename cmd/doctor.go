package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDoctorCmd())
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the external tools the pipeline needs",
		Long: `Doctor looks up the flutter, keytool, apksigner and jarsigner
executables on PATH and reports which are available. flutter and keytool are
required; at least one of apksigner and jarsigner is needed for signature
verification.`,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := commandLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	statuses, err := getWorkflow(cfg, log).Doctor(cmd.Context())

	if displayErr := ui.DisplayDoctor(statuses); displayErr != nil {
		return displayErr
	}

	return err
}
