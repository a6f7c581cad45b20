package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a theme, rebuilt whenever
// the theme cycles.
type Styles struct {
	Canvas  lipgloss.Style
	Panel   lipgloss.Style
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Idle    lipgloss.Style
	Bar     lipgloss.Style
	Spark   lipgloss.Style
	Help    lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().
			Foreground(t.Primary).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(38),
		Header:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Running: lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		Idle:    lipgloss.NewStyle().Foreground(t.Muted).Bold(true),
		Bar:     lipgloss.NewStyle().Foreground(t.Primary),
		Spark:   lipgloss.NewStyle().Foreground(t.Accent),
		Help:    lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// Bar renders a filled gauge of the given cell width for a 0..1 ratio.
func Bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
