package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

const SchemaVersion = "0.1.0"

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatSARIF):
		return FormatSARIF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Category string

const (
	CategoryNamespaceLocationMismatch Category = "namespace-location-mismatch"
	CategoryNamespaceNotMapped        Category = "namespace-not-mapped"
	CategoryUnresolvedImport          Category = "unresolved-import"
)

// Finding is one reported inconsistency. Findings are append-only and keep
// discovery order: namespace findings before import findings within a file,
// files in the order the walk produced them.
type Finding struct {
	File     string   `json:"file"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
}

type Summary struct {
	FileCount    int `json:"fileCount"`
	ErrorCount   int `json:"errorCount"`
	WarningCount int `json:"warningCount"`
}

type Report struct {
	SchemaVersion string    `json:"schemaVersion"`
	GeneratedAt   time.Time `json:"generatedAt"`
	RepoPath      string    `json:"repoPath"`
	Findings      []Finding `json:"findings"`
	Summary       Summary   `json:"summary"`
	Warnings      []string  `json:"warnings,omitempty"`
}

// Passed reports whether the run produced no error-severity findings.
// Warnings never affect the outcome.
func (r Report) Passed() bool {
	return r.Summary.ErrorCount == 0
}

func ComputeSummary(fileCount int, findings []Finding) Summary {
	summary := Summary{FileCount: fileCount}
	for _, finding := range findings {
		switch finding.Severity {
		case SeverityError:
			summary.ErrorCount++
		case SeverityWarning:
			summary.WarningCount++
		}
	}
	return summary
}

func filterBySeverity(findings []Finding, severity Severity) []Finding {
	matched := make([]Finding, 0, len(findings))
	for _, finding := range findings {
		if finding.Severity == severity {
			matched = append(matched, finding)
		}
	}
	return matched
}
