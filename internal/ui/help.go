package ui

import (
	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

const helpMarkdown = `# keaton

| Key | Action |
|---|---|
| ctrl+h / ctrl+l / tab | focus post list / document |
| j / k | next / previous post, or scroll the document |
| ] / [ | next / previous post from anywhere |
| ctrl+d / ctrl+u | half page down / up |
| gg / G | first / last |
| / | filter posts by text or author |
| ctrl+f | search the current post |
| n / N | next / previous match |
| esc | clear the post search |
| s | show or hide spoilers |
| t | toggle the post list |
| T | next theme |
| ? | this help |
| q | quit |
`

const helpMaxWidth = 64

// renderHelp renders the help overlay for the current size and theme.
func (m *Model) renderHelp() {
	width := min(helpMaxWidth, max(m.width-8, 20))
	out, err := renderMarkdown(helpMarkdown, width, m.theme.Dark)
	if err != nil {
		m.helpContent = helpMarkdown
		return
	}
	m.helpContent = out
}

func renderMarkdown(src string, width int, dark bool) (string, error) {
	style := glamourstyles.LightStyle
	if dark {
		style = glamourstyles.TokyoNightStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}
