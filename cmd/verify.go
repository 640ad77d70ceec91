package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/flutsign/flutsign/internal/model"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <artifact>",
		Short: "Verify the signature of a built APK or AAB",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := commandLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	if err := getWorkflow(cfg, log).VerifyArtifact(cmd.Context(), m.Path(args[0])); err != nil {
		return err
	}

	cmd.Printf("Signature verified: %s\n", args[0])

	return nil
}
