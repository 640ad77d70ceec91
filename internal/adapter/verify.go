package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

// SignatureVerifier checks that a built artifact carries a valid signature.
type SignatureVerifier interface {
	Verify(ctx context.Context, artifact m.Path) error
}

// ApksignerVerifier verifies signatures with apksigner, falling back to
// jarsigner when apksigner is not installed.
type ApksignerVerifier struct {
	fs     ProjectFS
	runner CommandRunner
	log    logging.Logger
}

// NewApksignerVerifier constructs an ApksignerVerifier.
func NewApksignerVerifier(fs ProjectFS, runner CommandRunner, log logging.Logger) *ApksignerVerifier {
	return &ApksignerVerifier{fs: fs, runner: runner, log: log}
}

// Verify checks the artifact signature. It prefers apksigner; jarsigner is
// accepted as a fallback because app bundles predate apksigner support on
// some SDK versions.
func (v *ApksignerVerifier) Verify(ctx context.Context, artifact m.Path) error {
	if artifact == "" || !v.fs.FileExists(artifact) {
		return fmt.Errorf("artifact not found: %s", artifact)
	}

	if _, err := v.runner.LookPath("apksigner"); err == nil {
		return v.verifyWithApksigner(ctx, artifact)
	}

	v.log.Warnf("apksigner not found, trying jarsigner instead")

	if _, err := v.runner.LookPath("jarsigner"); err == nil {
		return v.verifyWithJarsigner(ctx, artifact)
	}

	return fmt.Errorf("neither apksigner nor jarsigner found for verification")
}

func (v *ApksignerVerifier) verifyWithApksigner(ctx context.Context, artifact m.Path) error {
	out, err := v.runner.Run(ctx, "", "apksigner", "verify", "--verbose", string(artifact))
	if err == nil && strings.Contains(strings.ToLower(out), "verified") {
		v.log.Infof("signature verified with apksigner")
		return nil
	}

	switch {
	case strings.Contains(out, "DOES NOT VERIFY"):
		return fmt.Errorf("signature is invalid, check the keystore and signing configuration: %s", out)
	case strings.Contains(strings.ToLower(out), "failed to parse"):
		return fmt.Errorf("file could not be parsed, it may be corrupted or not a valid artifact: %s", out)
	}

	return fmt.Errorf("signature verification failed: %s", out)
}

func (v *ApksignerVerifier) verifyWithJarsigner(ctx context.Context, artifact m.Path) error {
	out, err := v.runner.Run(ctx, "", "jarsigner", "-verify", "-verbose", "-certs", string(artifact))
	if err == nil && strings.Contains(strings.ToLower(out), "jar verified") {
		v.log.Infof("signature verified with jarsigner")
		return nil
	}

	return fmt.Errorf("signature verification failed with jarsigner: %s", out)
}
