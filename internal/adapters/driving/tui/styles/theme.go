// Package styles defines the colour palette and lipgloss styles shared
// by the manualqa TUI views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Answer text stays near-white for readability on dark
// terminals; excerpts and chrome recede into the muted tones.
const (
	accent   = lipgloss.Color("#89B4FA") // headings, selection
	citation = lipgloss.Color("#CBA6F7") // sources panel heading
	body     = lipgloss.Color("#CDD6F4") // answer text, citations
	dimmed   = lipgloss.Color("#6C7086") // excerpts, hints, spinner
	ok       = lipgloss.Color("#A6E3A1")
	busy     = lipgloss.Color("#F9E2AF") // thinking state
	fail     = lipgloss.Color("#F38BA8")
	frame    = lipgloss.Color("#45475A") // input border
	backdrop = lipgloss.Color("#181825") // status bar background
)

// Styles holds the pre-built lipgloss styles the views render with.
type Styles struct {
	// Title renders the view header.
	Title lipgloss.Style

	// Subtitle renders the "Sources:" heading.
	Subtitle lipgloss.Style

	// Normal renders answer text and citation lines.
	Normal lipgloss.Style

	// Muted renders excerpts, key hints, and the spinner.
	Muted lipgloss.Style

	// Selected highlights the current manual in the library list.
	Selected lipgloss.Style

	// Error renders failure text.
	Error lipgloss.Style

	// Success renders positive status text.
	Success lipgloss.Style

	// Warning renders in-progress status text.
	Warning lipgloss.Style

	// InputField frames the question input.
	InputField lipgloss.Style

	// StatusBar renders the bottom status line.
	StatusBar lipgloss.Style

	// Help renders help text.
	Help lipgloss.Style
}

// DefaultStyles builds the styles every view shares.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(citation),
		Normal:   lipgloss.NewStyle().Foreground(body),
		Muted:    lipgloss.NewStyle().Foreground(dimmed),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(body).
			Background(accent),
		Error:   lipgloss.NewStyle().Foreground(fail),
		Success: lipgloss.NewStyle().Foreground(ok),
		Warning: lipgloss.NewStyle().Foreground(busy),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(frame).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(dimmed).
			Background(backdrop).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(dimmed),
	}
}
