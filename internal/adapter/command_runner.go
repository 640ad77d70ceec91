package adapter

import (
	"context"
	"os/exec"

	"github.com/flutsign/flutsign/internal/logging"
)

// CommandRunner abstracts external process execution so pipeline logic can
// be tested without invoking the real tools (keytool, flutter, apksigner).
type CommandRunner interface {
	// Run executes name with args in dir (empty means the current
	// directory) and returns the combined output.
	Run(ctx context.Context, dir string, name string, args ...string) (string, error)

	// LookPath reports the absolute path of an executable on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	log logging.Logger
}

// NewExecRunner constructs an ExecRunner.
func NewExecRunner(log logging.Logger) *ExecRunner {
	return &ExecRunner{log: log}
}

// Run executes the command and returns its combined stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, error) {
	r.log.Debugf("running %s %v", name, args)

	// #nosec G204 - name and args are fixed tool invocations, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()

	return string(out), err
}

// LookPath reports the absolute path of an executable on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
