package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: module ids, coordinates, prefixes.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "included" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "relocated" status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removals in diff summaries.
	ColorRed = lipgloss.Color("196")

	// colorBoldRed matches the ERROR log level.
	colorBoldRed = lipgloss.Color("204")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	colorHeaderBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module ids, coordinates).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Bundle entry statuses.
const (
	StatusIncluded  = "included"
	StatusExcluded  = "excluded"
	StatusRelocated = "relocated"
	StatusValid     = "valid"
	statusFailed    = "failed"
)

// statusStyle returns the style for a status word. Unknown statuses are unstyled.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusIncluded, StatusValid:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusRelocated:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusExcluded:
		return lipgloss.NewStyle().Faint(true)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minEntryColumnWidth keeps status words aligned across lines.
const minEntryColumnWidth = 48

// FormatEntryLine renders "c:<coordinate>  <status>" with a dim prefix,
// cyan coordinate, and colored status.
func FormatEntryLine(entry, status string) string {
	padding := minEntryColumnWidth - len(entry)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("c:") + StyleNoun.Render(entry) +
		strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatRelocation renders "from → to".
func FormatRelocation(from, to string) string {
	return StyleNoun.Render(from) + StyleDim.Render(" → ") + to
}
