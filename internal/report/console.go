package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/careweave/qre-analyzer/internal/model"
)

const ruleWidth = 80

// Render writes a styled human-readable report to w: a summary block
// followed by the findings grouped by severity, errors first.
func Render(w io.Writer, report model.Report) {
	rule := SubtleStyle.Render(strings.Repeat("=", ruleWidth))
	thinRule := SubtleStyle.Render(strings.Repeat("-", ruleWidth))

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, TitleStyle.Render("X12 278 X215 QRE Analysis Report"))
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "File: %s\n", report.FilePath)
	fmt.Fprintf(w, "TR3 Version: %s\n", report.TR3Version)
	fmt.Fprintf(w, "Valid: %s\n", verdict(report.IsValid))
	fmt.Fprintf(w, "Errors: %d\n", report.ErrorCount)
	fmt.Fprintf(w, "Warnings: %d\n", report.WarningCount)
	fmt.Fprintf(w, "Info: %d\n", report.InfoCount)
	if report.QueryMethod != "" {
		fmt.Fprintf(w, "Query Method: %s\n", report.QueryMethod)
	}
	fmt.Fprintf(w, "Segments Found: %d\n", len(report.SegmentsFound))
	fmt.Fprintln(w, thinRule)

	for _, severity := range []model.Severity{model.SeverityError, model.SeverityWarning, model.SeverityInfo} {
		findings := report.FindingsBySeverity(severity)
		if len(findings) == 0 {
			continue
		}

		style := severityStyle(string(severity))
		fmt.Fprintf(w, "\n%s (%d):\n", style.Render(string(severity)+"S"), len(findings))
		for _, f := range findings {
			segment := ""
			if f.Segment != "" {
				segment = fmt.Sprintf(" [%s]", f.Segment)
			}
			fmt.Fprintf(w, "  %s%s: %s\n", style.Render(f.Code), segment, f.Message)
			for _, field := range f.Context {
				fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("    %s: %s", field.Key, field.Value)))
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
}

func verdict(isValid bool) string {
	if isValid {
		return SuccessStyle.Render("✓ YES")
	}
	return ErrorStyle.Render("✗ NO")
}
