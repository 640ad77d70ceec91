// Package controller provides output and prompt adapters for the CLI.
package controller

import (
	"github.com/flutsign/flutsign/internal/domain"
	m "github.com/flutsign/flutsign/internal/model"
)

// UI displays pipeline progress and results.
type UI interface {
	DisplayDoctor(statuses []domain.ToolStatus) error
	DisplayReport(report m.RunReport) error
	DisplayOutcome(outcome m.PatchOutcome) error
}

// CredentialPrompt collects values interactively from the user.
type CredentialPrompt interface {
	// PromptSecret reads a masked value.
	PromptSecret(label string) (string, error)
	// PromptString reads a plain value, returning defaultValue on empty
	// input.
	PromptString(label, defaultValue string) (string, error)
}
