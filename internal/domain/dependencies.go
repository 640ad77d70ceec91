package domain

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/flutsign/flutsign/internal/adapter"
)

// ToolStatus describes one external tool the pipeline depends on.
type ToolStatus struct {
	Name string
	// Required tools fail the doctor check when missing; the others only
	// degrade functionality (verification has a fallback).
	Required bool
	Found    bool
	Path     string
	Hint     string
}

var requiredTools = []ToolStatus{
	{Name: "flutter", Required: true, Hint: "install the Flutter SDK: https://docs.flutter.dev/get-started/install"},
	{Name: "keytool", Required: true, Hint: "install a Java Development Kit: https://openjdk.org/install/"},
	{Name: "apksigner", Hint: "install the Android SDK build tools: https://developer.android.com/studio"},
	{Name: "jarsigner", Hint: "bundled with the JDK, used as a fallback verifier"},
}

// CheckDependencies looks up every external tool on PATH, concurrently, and
// returns their statuses. It returns an error when a required tool or every
// verifier is missing.
func CheckDependencies(ctx context.Context, runner adapter.CommandRunner) ([]ToolStatus, error) {
	statuses := make([]ToolStatus, len(requiredTools))

	g, _ := errgroup.WithContext(ctx)

	for i, tool := range requiredTools {
		i, tool := i, tool

		g.Go(func() error {
			status := tool

			if path, err := runner.LookPath(tool.Name); err == nil {
				status.Found = true
				status.Path = path
			}

			statuses[i] = status

			return nil
		})
	}

	// Lookups never return errors, they record absence instead.
	_ = g.Wait()

	var missing []string

	haveVerifier := false

	for _, status := range statuses {
		if status.Required && !status.Found {
			missing = append(missing, status.Name)
		}

		if (status.Name == "apksigner" || status.Name == "jarsigner") && status.Found {
			haveVerifier = true
		}
	}

	if !haveVerifier {
		missing = append(missing, "apksigner or jarsigner")
	}

	if len(missing) > 0 {
		return statuses, fmt.Errorf("missing dependencies: %s", strings.Join(missing, ", "))
	}

	return statuses, nil
}
