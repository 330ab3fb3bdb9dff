package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the lab
type Theme struct {
	Name       string
	Positive   lipgloss.Color
	Negative   lipgloss.Color
	Line       lipgloss.Color
	Arrow      lipgloss.Color
	Dielectric lipgloss.Color
	Shield     lipgloss.Color
	Cursor     lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:       "classic",
		Positive:   lipgloss.Color("#ff4444"),
		Negative:   lipgloss.Color("#4488ff"),
		Line:       lipgloss.Color("#cccccc"),
		Arrow:      lipgloss.Color("#ffffff"),
		Dielectric: lipgloss.Color("#ccaa00"),
		Shield:     lipgloss.Color("#888888"),
		Cursor:     lipgloss.Color("#00ff88"),
		Accent:     lipgloss.Color("#00ccff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Positive:   lipgloss.Color("#ff00ff"), // Magenta
		Negative:   lipgloss.Color("#00ffff"), // Cyan
		Line:       lipgloss.Color("#aa88ff"),
		Arrow:      lipgloss.Color("#ffff00"),
		Dielectric: lipgloss.Color("#ff8800"),
		Shield:     lipgloss.Color("#666666"),
		Cursor:     lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#ffff00"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Positive:   lipgloss.Color("#88ff88"), // Green phosphor
		Negative:   lipgloss.Color("#00aa00"),
		Line:       lipgloss.Color("#00cc00"),
		Arrow:      lipgloss.Color("#88ff88"),
		Dielectric: lipgloss.Color("#ffff00"),
		Shield:     lipgloss.Color("#005500"),
		Cursor:     lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Positive:   lipgloss.Color("#ff6b6b"),
		Negative:   lipgloss.Color("#0077be"), // Ocean blue
		Line:       lipgloss.Color("#00a8cc"),
		Arrow:      lipgloss.Color("#e0f0ff"),
		Dielectric: lipgloss.Color("#ffd700"),
		Shield:     lipgloss.Color("#4488aa"),
		Cursor:     lipgloss.Color("#00ff88"),
		Accent:     lipgloss.Color("#ffd700"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Error:      lipgloss.Color("#ff4444"),
	}

	// All available themes; the first is the default
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Themes[0], false
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
