// Package diagnostics reads editor diagnostic snapshots and reports when
// the total number of errors goes down.
package diagnostics

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity follows the LSP DiagnosticSeverity numbering.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// UnmarshalYAML accepts either the LSP number or its lower case name.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		if n < int(SeverityError) || n > int(SeverityHint) {
			return fmt.Errorf("severity %d out of range", n)
		}
		*s = Severity(n)
		return nil
	}

	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("invalid severity: %w", err)
	}
	switch strings.ToLower(name) {
	case "error":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "information", "info":
		*s = SeverityInformation
	case "hint":
		*s = SeverityHint
	default:
		return fmt.Errorf("unknown severity %q", name)
	}
	return nil
}

type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
	Source   string   `yaml:"source"`
}

// Report maps a document URI to its diagnostics.
type Report map[string][]Diagnostic

// Errors sums the error severity diagnostics across all documents.
func (r Report) Errors() int {
	total := 0
	for _, diags := range r {
		for _, d := range diags {
			if d.Severity == SeverityError {
				total++
			}
		}
	}
	return total
}

// Parse decodes a JSON or YAML snapshot.
func Parse(data []byte) (Report, error) {
	report := Report{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return report, nil
	}
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostics: %w", err)
	}
	return report, nil
}

func Load(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnostics: %w", err)
	}
	return Parse(data)
}
