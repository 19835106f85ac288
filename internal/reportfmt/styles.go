// Package reportfmt renders a result.Result as either machine-readable
// JSON or a styled terminal report (C11). Grounded on the teacher's
// cmd/nerd/ui package: a Styles struct of lipgloss.Style fields built
// once by NewStyles, applied by simple Render calls rather than by a
// full Bubble Tea program (this report is a one-shot CLI printout, not
// an interactive view).
package reportfmt

import "github.com/charmbracelet/lipgloss"

// Styles holds the handful of styled fragments the terminal renderer
// composes a report from.
type Styles struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Location  lipgloss.Style
	Kind      lipgloss.Style
	Name      lipgloss.Style
	Reason    lipgloss.Style
	Muted     lipgloss.Style
	Count     lipgloss.Style
}

// NewStyles builds the default report palette.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A")),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2196F3")).
			MarginTop(1),
		Location: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Kind: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107")),
		Name: lipgloss.NewStyle().
			Bold(true),
		Reason: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Count: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e53935")),
	}
}
