package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the terminal chrome around the plots.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	// Note is the fill of the hover annotation box.
	Note lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:       "night",
		Primary:    lipgloss.Color("#00ccff"),
		Secondary:  lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Note:       lipgloss.Color("#cccc44"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Primary:    lipgloss.Color("#1f77b4"),
		Secondary:  lipgloss.Color("#d62728"),
		Accent:     lipgloss.Color("#ff7f0e"),
		Background: lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#000000"),
		Muted:      lipgloss.Color("#7f7f7f"),
		Note:       lipgloss.Color("#ffff80"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Note:       lipgloss.Color("#88ff88"),
	}

	CurrentTheme = ThemeNight

	Themes = []Theme{ThemeNight, ThemePaper, ThemeRetro}
)

// GetTheme returns the named theme, or the default one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			break
		}
	}
	return CurrentTheme
}
