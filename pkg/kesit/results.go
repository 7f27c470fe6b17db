package kesit

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CaseStatus represents the execution outcome of a generated case.
type CaseStatus int

const (
	// CasePassed indicates the body returned without failing.
	CasePassed CaseStatus = iota
	// CaseFailed indicates an assertion failure, panic, or returned error.
	CaseFailed
	// CaseAborted indicates the fixture could not be prepared.
	CaseAborted
	// CaseSkipped indicates the case was filtered out or skipped by FailFast.
	CaseSkipped
)

// String returns a human-readable label for the case status.
func (s CaseStatus) String() string {
	switch s {
	case CasePassed:
		return "passed"
	case CaseFailed:
		return "failed"
	case CaseAborted:
		return "aborted"
	case CaseSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

func (s CaseStatus) MarshalYAML() (any, error) {
	return s.String(), nil
}

// CaseResult holds the execution result of a single generated case.
type CaseResult struct {
	ID       string     `yaml:"id,omitempty"`
	Test     string     `yaml:"test"`
	Name     string     `yaml:"name"`
	Tags     []string   `yaml:"tags,omitempty"`
	Path     Path       `yaml:"path,flow"`
	Bindings []Binding  `yaml:"bindings,omitempty"`
	Status   CaseStatus `yaml:"status"`

	// Error is the error message when the case failed. Empty if passed.
	Error string `yaml:"error,omitempty"`

	Duration  time.Duration `yaml:"duration"`
	StartedAt time.Time     `yaml:"startedAt"`
}

// RunResult holds the complete results of a test run.
type RunResult struct {
	Cases     []CaseResult    `yaml:"cases"`
	Summary   ReporterSummary `yaml:"summary"`
	Duration  time.Duration   `yaml:"duration"`
	StartedAt time.Time       `yaml:"startedAt"`
}

// WriteReport stores the run result as YAML.
func (r *RunResult) WriteReport(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write report %s: %w", path, err)
	}
	return nil
}
