// Package tui is the interactive admin screen: the paginated user table and
// the add, edit, delete and view dialogs.
package tui

import (
	"uadmin/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the screen. CLI output reuses it.
type Theme struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	FieldErr lipgloss.Style
	Box      lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style

	chips map[domain.Tone]lipgloss.Style
}

// NewTheme builds the styles for renderer r.
func NewTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#42A5F5")).MarginBottom(1),
		Header:   r.NewStyle().Bold(true).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Selected: r.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#37474F")),
		Border:   r.NewStyle().Foreground(lipgloss.Color("#546E7A")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("244")),
		Label:    r.NewStyle().Width(14),
		Focused:  r.NewStyle().Width(14).Bold(true).Foreground(lipgloss.Color("#42A5F5")),
		FieldErr: r.NewStyle().Foreground(lipgloss.Color("#EF5350")),
		Box:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#546E7A")).Padding(1, 2),
		Success:  r.NewStyle().Foreground(lipgloss.Color("#1B1B1B")).Background(lipgloss.Color("#66BB6A")).Padding(0, 1),
		Failure:  r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#EF5350")).Padding(0, 1),
		chips:    map[domain.Tone]lipgloss.Style{},
	}
	for _, tone := range []domain.Tone{domain.ToneNeutral, domain.ToneWarning, domain.ToneInfo, domain.ToneSuccess} {
		t.chips[tone] = r.NewStyle().
			Foreground(lipgloss.Color("#1B1B1B")).
			Background(lipgloss.Color(tone.Hex())).
			Padding(0, 1)
	}
	return t
}

// Chip renders a status as a coloured indicator.
func (t Theme) Chip(s domain.Status) string {
	style, ok := t.chips[domain.StatusTone(s)]
	if !ok {
		return s.String()
	}
	return style.Render(s.String())
}
