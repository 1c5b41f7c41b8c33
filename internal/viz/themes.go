package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the board and the status panel.
type Theme struct {
	Name      string
	One       lipgloss.Color
	Zero      lipgloss.Color
	Title     lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Border    lipgloss.Color
	Idle      lipgloss.Color
	Busy      lipgloss.Color
	Error     lipgloss.Color
}

var Themes = []Theme{
	{
		Name:      "neon",
		One:       "#ff00ff",
		Zero:      "#666666",
		Title:     "#00ffff",
		Highlight: "#ffff00",
		Text:      "#ffffff",
		Border:    "#444466",
		Idle:      "#00ff88",
		Busy:      "#ffaa00",
		Error:     "#ff4444",
	},
	{
		Name:      "phosphor",
		One:       "#00ff00",
		Zero:      "#005500",
		Title:     "#88ff88",
		Highlight: "#ffff00",
		Text:      "#00cc00",
		Border:    "#003300",
		Idle:      "#88ff88",
		Busy:      "#ffff00",
		Error:     "#ff0000",
	},
	{
		Name:      "paper",
		One:       "#ffffff",
		Zero:      "#888888",
		Title:     "#0088ff",
		Highlight: "#0088ff",
		Text:      "#cccccc",
		Border:    "#555555",
		Idle:      "#00cc66",
		Busy:      "#ffaa00",
		Error:     "#ff0000",
	},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// nextTheme cycles to the theme after name.
func nextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
