package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/flutsign/flutsign/internal/logging"
	m "github.com/flutsign/flutsign/internal/model"
)

// Build types accepted by BuildRelease.
const (
	BuildTypeAPK = "apk"
	BuildTypeAAB = "aab"
)

// BuildRunner produces a signed release artifact for a project.
type BuildRunner interface {
	BuildRelease(ctx context.Context, projectRoot m.Path, buildType string) (m.Path, error)
}

// FlutterBuildRunner builds release artifacts by invoking the flutter CLI.
type FlutterBuildRunner struct {
	fs     ProjectFS
	runner CommandRunner
	log    logging.Logger
}

// NewFlutterBuildRunner constructs a FlutterBuildRunner.
func NewFlutterBuildRunner(fs ProjectFS, runner CommandRunner, log logging.Logger) *FlutterBuildRunner {
	return &FlutterBuildRunner{fs: fs, runner: runner, log: log}
}

// BuildRelease runs `flutter build` in release mode and returns the artifact
// path. When the artifact is not at its expected location, any sibling file
// with the right extension is accepted instead, since Flutter tooling has
// renamed outputs across versions.
func (b *FlutterBuildRunner) BuildRelease(ctx context.Context, projectRoot m.Path, buildType string) (m.Path, error) {
	subcommand := buildType
	if buildType == BuildTypeAAB {
		subcommand = "appbundle"
	} else if buildType != BuildTypeAPK {
		return "", fmt.Errorf("unsupported build type %q", buildType)
	}

	b.log.Infof("building flutter %s in release mode", buildType)

	out, err := b.runner.Run(ctx, string(projectRoot), "flutter", "build", subcommand, "--release")
	if err != nil {
		b.logBuildHints(out)
		return "", fmt.Errorf("flutter build failed: %w: %s", err, out)
	}

	return b.resolveArtifact(projectRoot, buildType)
}

func (b *FlutterBuildRunner) resolveArtifact(projectRoot m.Path, buildType string) (m.Path, error) {
	var outputDir, artifact m.Path

	if buildType == BuildTypeAPK {
		outputDir = b.fs.JoinPath(string(projectRoot), "build", "app", "outputs", "flutter-apk")
		artifact = b.fs.JoinPath(string(outputDir), "app-release.apk")
	} else {
		outputDir = b.fs.JoinPath(string(projectRoot), "build", "app", "outputs", "bundle", "release")
		artifact = b.fs.JoinPath(string(outputDir), "app-release.aab")
	}

	if b.fs.FileExists(artifact) {
		b.log.Infof("build completed: %s", artifact)
		return artifact, nil
	}

	ext := "." + buildType

	names, err := b.fs.ListDir(outputDir)
	if err == nil {
		for _, name := range names {
			if strings.HasSuffix(name, ext) {
				found := b.fs.JoinPath(string(outputDir), name)
				b.log.Warnf("expected output not found at %s, using %s", artifact, found)

				return found, nil
			}
		}
	}

	return "", fmt.Errorf("build output not found at expected location %s", artifact)
}

func (b *FlutterBuildRunner) logBuildHints(out string) {
	switch {
	case strings.Contains(out, "key.properties") && strings.Contains(out, "not found"):
		b.log.Infof("hint: make sure key.properties is in the android/ directory")
	case strings.Contains(out, "keystore") && strings.Contains(out, "does not exist"):
		b.log.Infof("hint: the keystore path in key.properties is incorrect")
	case strings.Contains(out, "Gradle") && strings.Contains(out, "failed"):
		b.log.Infof("hint: check the project's Gradle configuration")
	}
}
