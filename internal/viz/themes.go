package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a HUD color scheme.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
}

var (
	ThemeAmber = Theme{
		Name:    "amber",
		Primary: lipgloss.Color("#ffb000"),
		Accent:  lipgloss.Color("#ff6a00"),
		Text:    lipgloss.Color("#ffe8c0"),
		Muted:   lipgloss.Color("#8a6a30"),
		Good:    lipgloss.Color("#ffd75f"),
		Warn:    lipgloss.Color("#ff5f5f"),
	}

	ThemeIce = Theme{
		Name:    "ice",
		Primary: lipgloss.Color("#7fd4ff"),
		Accent:  lipgloss.Color("#b48aff"),
		Text:    lipgloss.Color("#e8f6ff"),
		Muted:   lipgloss.Color("#4a6a80"),
		Good:    lipgloss.Color("#8affc1"),
		Warn:    lipgloss.Color("#ff8a8a"),
	}

	ThemeJade = Theme{
		Name:    "jade",
		Primary: lipgloss.Color("#00d787"),
		Accent:  lipgloss.Color("#5fffaf"),
		Text:    lipgloss.Color("#d7ffe8"),
		Muted:   lipgloss.Color("#3a7a5a"),
		Good:    lipgloss.Color("#afff87"),
		Warn:    lipgloss.Color("#ffaf5f"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#bbbbbb"),
		Text:    lipgloss.Color("#eeeeee"),
		Muted:   lipgloss.Color("#666666"),
		Good:    lipgloss.Color("#ffffff"),
		Warn:    lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeAmber, ThemeIce, ThemeJade, ThemeMono}
)

// GetTheme resolves a theme by name, defaulting to amber.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeAmber
}

// NextTheme returns the theme after t in cycle order.
func NextTheme(t Theme) Theme {
	for i, cur := range Themes {
		if cur.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames lists the available theme names in cycle order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
