package adapter

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	m "github.com/flutsign/flutsign/internal/model"
)

// RunReportStore persists signing-run reports.
type RunReportStore interface {
	Save(dir m.Path, report m.RunReport) (m.Path, error)
}

// LocalRunReportStore writes one YAML file per signing run.
type LocalRunReportStore struct {
	fs ProjectFS

	// now is swappable for deterministic file names in tests.
	now func() time.Time
}

// NewLocalRunReportStore constructs a LocalRunReportStore.
func NewLocalRunReportStore(fs ProjectFS) *LocalRunReportStore {
	return &LocalRunReportStore{fs: fs, now: time.Now}
}

// Save marshals the report to YAML under dir, creating it if necessary, and
// returns the report file path.
func (rs *LocalRunReportStore) Save(dir m.Path, report m.RunReport) (m.Path, error) {
	if err := rs.fs.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	name := fmt.Sprintf("signing-run-%s.yaml", rs.now().UTC().Format("20060102T150405"))
	path := rs.fs.JoinPath(string(dir), name)

	if err := rs.fs.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write run report: %w", err)
	}

	return path, nil
}
