package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/flutsign/flutsign/internal/domain"
	m "github.com/flutsign/flutsign/internal/model"
)

// SimpleUI implements UI using the cobra command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayDoctor prints a table of external tool statuses.
func (s *SimpleUI) DisplayDoctor(statuses []domain.ToolStatus) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Tool", "Status", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, status := range statuses {
		state := "missing"
		detail := status.Hint

		if status.Found {
			state = "ok"
			detail = status.Path
		}

		table.Append([]string{status.Name, state, detail})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReport prints the step summary of a signing run.
func (s *SimpleUI) DisplayReport(report m.RunReport) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Step", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, step := range report.Steps {
		table.Append([]string{step.Name, string(step.Status), step.Detail})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	if report.Artifact != "" {
		s.printf("\nSigned artifact: %s\n", report.Artifact)
	}

	return nil
}

// DisplayOutcome prints the result of a standalone patch operation.
func (s *SimpleUI) DisplayOutcome(outcome m.PatchOutcome) error {
	switch outcome.Status {
	case m.StatusAlreadyPresent:
		s.printf("Signing configuration already present, nothing to do\n")
	case m.StatusAppliedWithoutVariantWiring:
		s.printf("Signing configuration inserted, but no release block was found to reference it\n")
	default:
		s.printf("Signing configuration applied\n")
	}

	if outcome.BackupPath != "" {
		s.printf("Backup written to %s\n", outcome.BackupPath)
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
