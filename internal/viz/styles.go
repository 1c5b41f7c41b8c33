package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	panel   lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	ones    lipgloss.Style
	zeros   lipgloss.Style
	current lipgloss.Style
	idle    lipgloss.Style
	busy    lipgloss.Style
	failed  lipgloss.Style
	hint    lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(44),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Zero).Width(10),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		ones:    lipgloss.NewStyle().Foreground(t.One),
		zeros:   lipgloss.NewStyle().Foreground(t.Zero),
		current: lipgloss.NewStyle().Bold(true).Foreground(t.Highlight).Underline(true),
		idle:    lipgloss.NewStyle().Bold(true).Foreground(t.Idle),
		busy:    lipgloss.NewStyle().Bold(true).Foreground(t.Busy),
		failed:  lipgloss.NewStyle().Foreground(t.Error),
		hint:    lipgloss.NewStyle().Foreground(t.Border).Italic(true).MarginTop(1),
	}
}

// progressBar renders fraction in [0,1] as a bar of width runes.
func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
