// Package render formats search results and documents for the terminal.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used to render output.
type Theme struct {
	Path    lipgloss.Style
	LineNo  lipgloss.Style
	Match   lipgloss.Style
	Context lipgloss.Style
	Current lipgloss.Style
	Status  lipgloss.Style
}

// NewTheme returns the named theme ("light" or "dark") rendering to w.
// Colors are dropped automatically when w is not a terminal.
func NewTheme(name string, w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)

	if name == "dark" {
		return Theme{
			Path:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")),
			LineNo:  r.NewStyle().Foreground(lipgloss.Color("#10B981")),
			Match:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FCD34D")).Background(lipgloss.Color("#78350F")),
			Context: r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
			Current: r.NewStyle().Background(lipgloss.Color("#1F2937")),
			Status:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		}
	}

	return Theme{
		Path:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		LineNo:  r.NewStyle().Foreground(lipgloss.Color("#047857")),
		Match:   r.NewStyle().Bold(true).Background(lipgloss.Color("#FDE68A")),
		Context: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Current: r.NewStyle().Background(lipgloss.Color("#FEF3C7")),
		Status:  r.NewStyle().Foreground(lipgloss.Color("#374151")),
	}
}
