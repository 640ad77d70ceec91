// Package cmd provides the root command and CLI setup for flutsign.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flutsign/flutsign/internal/adapter"
	"github.com/flutsign/flutsign/internal/config"
	"github.com/flutsign/flutsign/internal/controller"
	"github.com/flutsign/flutsign/internal/domain"
	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

var logger *logging.WriterLogger
var fs adapter.ProjectFS
var ui controller.UI
var prompt controller.CredentialPrompt

// workflow is rebuilt per run from the loaded configuration; tests preset it
// to a stub instead.
var workflow domain.Workflow

func init() {
	logger = logging.NewWriterLogger(os.Stderr, false)
	fs = adapter.NewLocalProjectFS()
	ui = controller.NewSimpleUI(rootCmd)
	prompt = controller.NewTUIPrompt()
}

var configFlag string
var projectFlag string
var verboseFlag bool
var nonInteractiveFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flutsign",
		Short: "Flutter Android release signing tool",
		Long: `Flutsign automates the Android release signing of a Flutter project:
it generates a keystore, writes the key.properties credentials file, patches
the app-level Gradle build script to reference them, builds the release
artifact and verifies its signature.

Credentials can be provided in a .flutsign.yaml config file, through the
KEYSTORE_PASSWORD / KEY_PASSWORD / STORE_ALIAS environment variables, or
interactively.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetDebug(verboseFlag)
		},
	}

	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to a YAML configuration file")
	cmd.PersistentFlags().StringVarP(&projectFlag, "path", "C", "", "path to the Flutter project (default from config, else .)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVar(&nonInteractiveFlag, "non-interactive", false, "never prompt, fail when required input is missing")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig loads configuration and folds in the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	if projectFlag != "" {
		cfg.ProjectPath = projectFlag
	}

	if verboseFlag {
		cfg.Debug = true
	}

	if nonInteractiveFlag {
		cfg.NonInteractive = true
	}

	return cfg, nil
}

// commandLogger returns the shared logger, redirected to a file when the
// configuration asks for one.
func commandLogger(cfg *config.Config) (logging.Logger, error) {
	if cfg.LogFile == "" {
		logger.SetDebug(cfg.Debug)
		return logger, nil
	}

	return logging.NewFileLogger(cfg.LogFile, cfg.Debug)
}

// getWorkflow returns the preset workflow (tests) or wires a fresh one from
// the configuration, with every collaborator logging through log.
func getWorkflow(cfg *config.Config, log logging.Logger) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	runner := adapter.NewExecRunner(log)
	writer := adapter.NewSafeWriter(fs, log)
	patcher := domain.NewPatcher(log, m.Dialect(cfg.FallbackDialect))

	return domain.NewWorkflow(domain.Deps{
		FS:       fs,
		Writer:   writer,
		Runner:   runner,
		Keystore: adapter.NewKeytoolGenerator(fs, runner, log),
		Props:    adapter.NewLocalPropertiesStore(fs, log),
		Builder:  adapter.NewFlutterBuildRunner(fs, runner, log),
		Verifier: adapter.NewApksignerVerifier(fs, runner, log),
		Reports:  adapter.NewLocalRunReportStore(fs),
		Patcher:  patcher,
	}, log)
}
