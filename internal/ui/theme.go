package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/keaton/internal/fold"
)

// Theme is a named colour palette.
type Theme struct {
	Name      string
	Window    lipgloss.Color
	Text      lipgloss.Color
	Base      lipgloss.Color
	Highlight lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Dark      bool
}

// Themes lists the palettes in cycling order.
var Themes = []Theme{
	{Name: "dark", Window: "#2b2b2b", Text: "#e0e0e0", Base: "#1e1e1e", Highlight: "#007acc", Muted: "#7f8c8d", Error: "#ff6b6b", Dark: true},
	{Name: "light", Window: "#f8f9fa", Text: "#222222", Base: "#ffffff", Highlight: "#0078d7", Muted: "#6c757d", Error: "#c0392b"},
	{Name: "parchment", Window: "#f5f0d7", Text: "#3b2f2f", Base: "#fcf7e8", Highlight: "#d1b97f", Muted: "#8b7d6b", Error: "#a93226"},
	{Name: "zelda", Window: "#1e2f1c", Text: "#f0e6c8", Base: "#243924", Highlight: "#a89c4f", Muted: "#8fa382", Error: "#e57373", Dark: true},
}

// ThemeByName returns the named theme, or the first one.
func ThemeByName(name string) Theme {
	for _, th := range Themes {
		if strings.EqualFold(th.Name, name) {
			return th
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name in cycling order.
func NextTheme(name string) Theme {
	for i, th := range Themes {
		if strings.EqualFold(th.Name, name) {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

type styles struct {
	accent      lipgloss.Color
	listBorder  lipgloss.Color
	focusBorder lipgloss.Color
	rowSelected lipgloss.Style
	date        lipgloss.Style
	badge       lipgloss.Style
	preview     lipgloss.Style
	text        lipgloss.Style
	muted       lipgloss.Style
	quoteBar    lipgloss.Style
	match       lipgloss.Style
	current     lipgloss.Style
	spoiler     lipgloss.Style
	bar         lipgloss.Style
	barError    lipgloss.Style
	status      lipgloss.Style
	progress    lipgloss.Style
	help        lipgloss.Style
	errLine     lipgloss.Style
}

func newStyles(th Theme) styles {
	return styles{
		accent:      th.Highlight,
		listBorder:  th.Muted,
		focusBorder: th.Highlight,
		rowSelected: lipgloss.NewStyle().Foreground(th.Base).Background(th.Highlight).Bold(true),
		date:        lipgloss.NewStyle().Foreground(th.Muted),
		badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Padding(0, 1),
		preview:     lipgloss.NewStyle().Foreground(th.Muted),
		text:        lipgloss.NewStyle().Foreground(th.Text),
		muted:       lipgloss.NewStyle().Foreground(th.Muted),
		quoteBar:    lipgloss.NewStyle().Foreground(th.Highlight),
		match:       lipgloss.NewStyle().Foreground(th.Base).Background(th.Muted),
		current:     lipgloss.NewStyle().Foreground(th.Base).Background(th.Highlight).Bold(true),
		spoiler:     lipgloss.NewStyle().Foreground(th.Muted).Background(th.Muted),
		bar:         lipgloss.NewStyle().Padding(0, 1).Foreground(th.Text).Background(th.Base),
		barError:    lipgloss.NewStyle().Padding(0, 1).Foreground(th.Base).Background(th.Error),
		status:      lipgloss.NewStyle().Padding(0, 1).Foreground(th.Muted).Background(th.Base),
		progress:    lipgloss.NewStyle().Foreground(th.Highlight),
		help: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(th.Highlight),
		errLine: lipgloss.NewStyle().Foreground(th.Error),
	}
}

const defaultAuthorColor = lipgloss.Color("#7f8c8d")

// authorColors maps folded author names to their display colour.
var authorColors = map[string]lipgloss.Color{
	"pali":          "#638db6",
	"riaj":          "#638db6",
	"xavier":        "#fb6160",
	"regol":         "#fb6160",
	"sabel":         "#ff5694",
	"zafiro bladen": "#ac97ff",
	"soria":         "#65bdf3",
	"legend":        "#85de85",
	"furanku":       "#faa351",
	"vichoxd":       "#62d4e3",
}

// AuthorColor returns the colour used for an author's name.
func AuthorColor(author string) lipgloss.Color {
	if c, ok := authorColors[fold.String(strings.TrimSpace(author))]; ok {
		return c
	}
	return defaultAuthorColor
}
