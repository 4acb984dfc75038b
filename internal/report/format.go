package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

type Formatter struct{}

func NewFormatter() Formatter {
	return Formatter{}
}

func (f Formatter) Format(report Report, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatTable(report), nil
	case FormatJSON:
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", err
		}
		return string(payload) + "\n", nil
	case FormatSARIF:
		return formatSARIF(report)
	default:
		return "", ErrUnknownFormat
	}
}

func formatTable(report Report) string {
	var buffer bytes.Buffer

	if len(report.Findings) == 0 {
		buffer.WriteString("No findings.\n")
	}
	appendSeverityGroup(&buffer, "Errors:", filterBySeverity(report.Findings, SeverityError))
	appendSeverityGroup(&buffer, "Warnings:", filterBySeverity(report.Findings, SeverityWarning))

	appendRunWarnings(&buffer, report.Warnings)
	_, _ = fmt.Fprintf(
		&buffer,
		"Summary: %d error(s), %d warning(s) in %d file(s)\n",
		report.Summary.ErrorCount,
		report.Summary.WarningCount,
		report.Summary.FileCount,
	)
	return buffer.String()
}

func appendSeverityGroup(buffer *bytes.Buffer, heading string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	buffer.WriteString(heading)
	buffer.WriteString("\n")

	writer := tabwriter.NewWriter(buffer, 0, 0, 2, ' ', 0)
	for _, finding := range findings {
		_, _ = fmt.Fprintf(writer, "  %s\t%s\t%s\n", finding.File, finding.Category, finding.Message)
	}
	_ = writer.Flush()
	buffer.WriteString("\n")
}

func appendRunWarnings(buffer *bytes.Buffer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	buffer.WriteString("Run warnings:\n")
	for _, warning := range warnings {
		buffer.WriteString("- ")
		buffer.WriteString(warning)
		buffer.WriteString("\n")
	}
	buffer.WriteString("\n")
}
