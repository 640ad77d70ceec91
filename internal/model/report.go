package model

// StepStatus is the result of one pipeline step in a signing run.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// RunStep records the outcome of a single step of a signing run.
type RunStep struct {
	Name   string     `yaml:"name"`
	Status StepStatus `yaml:"status"`
	Detail string     `yaml:"detail,omitempty"`
}

// RunReport summarizes a complete signing run for persistence and display.
type RunReport struct {
	Project    Path      `yaml:"project"`
	ConfigName string    `yaml:"config_name"`
	BuildType  string    `yaml:"build_type,omitempty"`
	Artifact   Path      `yaml:"artifact,omitempty"`
	Verified   bool      `yaml:"verified"`
	Steps      []RunStep `yaml:"steps"`
}

// AddStep appends a step record to the report.
func (r *RunReport) AddStep(name string, status StepStatus, detail string) {
	r.Steps = append(r.Steps, RunStep{Name: name, Status: status, Detail: detail})
}

// Failed reports whether any step failed.
func (r *RunReport) Failed() bool {
	for _, s := range r.Steps {
		if s.Status == StepFailed {
			return true
		}
	}

	return false
}
