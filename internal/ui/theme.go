package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette. Values are hex strings.
type Theme struct {
	Name string

	Background string
	Surface    string // header bar
	Selection  string // hovered row background

	Border      string
	BorderMuted string
	BorderFocus string

	Text          string
	SelectionText string
	Muted         string
	Faint         string
	Accent        string
	Warning       string
	Danger        string
}

// Styles are the rendered forms of a Theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style

	Header       lipgloss.Style
	Logo         lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Row          lipgloss.Style
	Hovered      lipgloss.Style
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	color := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	leftRule := func(border string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(color(border)).
			PaddingLeft(1)
	}

	return Styles{
		Text:       lipgloss.NewStyle().Foreground(color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(color(t.Accent)),
		DangerText: lipgloss.NewStyle().Foreground(color(t.Danger)).Bold(true),

		Header:       lipgloss.NewStyle().Background(color(t.Surface)),
		Logo:         lipgloss.NewStyle().Foreground(color(t.Warning)).Bold(true),
		Input:        leftRule(t.BorderMuted),
		InputFocused: leftRule(t.BorderFocus),
		Row:          leftRule(t.Border).Foreground(color(t.Text)),
		Hovered: leftRule(t.BorderFocus).
			Background(color(t.Selection)).
			Foreground(color(t.SelectionText)),
	}
}

// Palettes: Nightfox (EdenEast/nightfox.nvim), Kanagawa
// (rebelot/kanagawa.nvim) and Tailwind's slate/sky scale.
var themeList = []Theme{
	{
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330", Selection: "#2b3b51",
		Border: "#39506d", BorderMuted: "#212e3f", BorderFocus: "#719cd6",
		Text: "#cdcecf", SelectionText: "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent: "#719cd6", Warning: "#dbc074", Danger: "#c94f6d",
	},
	{
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", Selection: "#2D4F67",
		Border: "#54546D", BorderMuted: "#2A2A37", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", SelectionText: "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent: "#7E9CD8", Warning: "#E6C384", Danger: "#E46876",
	},
	{
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a", Selection: "#0284c7",
		Border: "#334155", BorderMuted: "#1e293b", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", SelectionText: "#f8fafc", Muted: "#94a3b8", Faint: "#64748b",
		Accent: "#38bdf8", Warning: "#f59e0b", Danger: "#ef4444",
	},
}

// GetTheme returns the named theme, or the first one when name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themeList {
		if t.Name == name {
			return t
		}
	}
	return themeList[0]
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range themeList {
		if t.Name == current {
			return themeList[(i+1)%len(themeList)].Name
		}
	}
	return themeList[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themeList))
	for i, t := range themeList {
		names[i] = t.Name
	}
	return names
}
