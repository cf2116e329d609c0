// Package report renders analysis reports for the console and as JSON.
package report

import "github.com/charmbracelet/lipgloss"

var (
	// SuccessColor indicates a passing verdict.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent output.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for the report header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(InfoColor)

	// SuccessStyle formats the passing verdict.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// ErrorStyle formats errors and the failing verdict.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// WarningStyle formats warning findings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// InfoStyle formats informational findings.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats finding context and separators.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// severityStyle returns the style used for findings of the given severity.
func severityStyle(severity string) lipgloss.Style {
	switch severity {
	case "ERROR":
		return ErrorStyle
	case "WARNING":
		return WarningStyle
	default:
		return InfoStyle
	}
}
