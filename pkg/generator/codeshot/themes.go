package codeshot

import "slices"

// Theme is the colour set for one editor look. Chroma names the
// highlighting style used for HTML output.
type Theme struct {
	Name     string
	BG       string
	Text     string
	TitleBar string
	LineNum  string
	Chroma   string
}

// DefaultTheme is used for unknown theme names.
const DefaultTheme = "dark"

// Themes is the fixed theme table.
var Themes = []Theme{
	{"dark", "#1e1e1e", "#d4d4d4", "#2d2d2d", "#858585", "native"},
	{"light", "#ffffff", "#24292e", "#f3f3f3", "#959da5", "vs"},
	{"dracula", "#282a36", "#f8f8f2", "#21222c", "#6272a4", "dracula"},
	{"monokai", "#272822", "#f8f8f2", "#1e1f1c", "#75715e", "monokai"},
	{"nord", "#2e3440", "#d8dee9", "#3b4252", "#4c566a", "nord"},
	{"github-dark", "#0d1117", "#c9d1d9", "#161b22", "#6e7681", "github-dark"},
	{"github-light", "#ffffff", "#24292f", "#f6f8fa", "#8c959f", "github"},
	{"one-dark", "#282c34", "#abb2bf", "#21252b", "#5c6370", "onedark"},
	{"solarized-dark", "#002b36", "#839496", "#073642", "#586e75", "solarized-dark"},
	{"solarized-light", "#fdf6e3", "#657b83", "#eee8d5", "#93a1a1", "solarized-light"},
	{"tokyo-night", "#1a1b26", "#a9b1d6", "#16161e", "#565f89", "tokyonight-night"},
	{"gruvbox", "#282828", "#ebdbb2", "#1d2021", "#928374", "gruvbox"},
	{"material", "#263238", "#eeffff", "#1e272c", "#546e7a", "doom-one"},
	{"synthwave", "#262335", "#ffffff", "#1e1a2e", "#848bbd", "witchhazel"},
	{"night-owl", "#011627", "#d6deeb", "#01111d", "#4b6479", "modus-vivendi"},
}

// LookupTheme returns the named theme, falling back to DefaultTheme.
func LookupTheme(name string) Theme {
	i := slices.IndexFunc(Themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		i = slices.IndexFunc(Themes, func(t Theme) bool { return t.Name == DefaultTheme })
	}
	return Themes[i]
}

// ThemeNames lists the available theme names in table order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
