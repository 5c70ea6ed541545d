package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the canvas and the side panel. Bodies cycle through the
// Bodies palette in roster order.
type Theme struct {
	Name    string
	Bodies  []lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Bodies:  []lipgloss.Color{"#00ffff", "#ff00ff", "#ffff00", "#00ff88"},
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Bodies:  []lipgloss.Color{"#00ff00", "#88ff88", "#00aa00", "#ccffcc"},
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	// original plot colours: blue and red bodies
	ThemeClassic = Theme{
		Name:    "classic",
		Bodies:  []lipgloss.Color{"#3377ff", "#ff3333", "#33cc33", "#ffaa00"},
		Accent:  lipgloss.Color("#3377ff"),
		Text:    lipgloss.Color("#e0e0e0"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#33cc33"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff3333"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Bodies:  []lipgloss.Color{"#feca57", "#ff6b6b", "#ff9ff3", "#5fd068"},
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the classic palette.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) bodyStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Bodies[i%len(t.Bodies)])
}

// BodyStyles returns one foreground style per canvas layer.
func (t Theme) BodyStyles(n int) []lipgloss.Style {
	out := make([]lipgloss.Style, n)
	for i := range out {
		out[i] = t.bodyStyle(i)
	}
	return out
}
