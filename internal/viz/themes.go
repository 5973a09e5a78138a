package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeNebula = Theme{
		Name:       "nebula",
		Primary:    lipgloss.Color("#9966ff"), // Violet
		Secondary:  lipgloss.Color("#00ccff"), // Cyan
		Accent:     lipgloss.Color("#ff66cc"),
		Background: lipgloss.Color("#0a0a14"),
		Text:       lipgloss.Color("#e8e8ff"),
		Muted:      lipgloss.Color("#555577"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff4455"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Primary:    lipgloss.Color("#ff6b35"), // Accretion orange
		Secondary:  lipgloss.Color("#ffd700"),
		Accent:     lipgloss.Color("#ff2244"),
		Background: lipgloss.Color("#140a05"),
		Text:       lipgloss.Color("#fff0e0"),
		Muted:      lipgloss.Color("#775544"),
		Success:    lipgloss.Color("#88ff55"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff3333"),
	}

	ThemeVoid = Theme{
		Name:       "void",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#aaaaaa"),
		Accent:     lipgloss.Color("#4488ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeIce = Theme{
		Name:       "ice",
		Primary:    lipgloss.Color("#88ddff"),
		Secondary:  lipgloss.Color("#4499cc"),
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#05101a"),
		Text:       lipgloss.Color("#e0f4ff"),
		Muted:      lipgloss.Color("#446677"),
		Success:    lipgloss.Color("#66ffcc"),
		Warning:    lipgloss.Color("#ffdd55"),
		Error:      lipgloss.Color("#ff5566"),
	}

	// Default theme
	CurrentTheme = ThemeNebula

	// All available themes
	Themes = []Theme{
		ThemeNebula,
		ThemeEmber,
		ThemeVoid,
		ThemeIce,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNebula
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
