package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kyaoi/keaton/internal/fold"
	"github.com/kyaoi/keaton/internal/markup"
	"github.com/kyaoi/keaton/internal/thread"
)

// rowHeight is the number of lines one post takes in the list pane.
const rowHeight = 2

type badge struct {
	label string
	bg    lipgloss.Color
}

var (
	updateBadge     = badge{label: "Update", bg: "#2980b9"}
	miniUpdateBadge = badge{label: "Mini-update", bg: "#d35400"}
)

// postBadge marks posts announcing a story update. It reads the folded body
// filled in by the normalization cache and folds the raw body only when that
// is missing.
func postBadge(p thread.Post) (badge, bool) {
	folded := p.FoldedBody
	if folded == "" {
		folded = fold.String(p.Body)
	}
	return badgeFor(folded)
}

func badgeFor(folded string) (badge, bool) {
	lead := strings.TrimSpace(markup.StripTags(folded))
	switch {
	case strings.HasPrefix(lead, "miniactualizacion"):
		return miniUpdateBadge, true
	case strings.HasPrefix(lead, "actualizacion"):
		return updateBadge, true
	}
	return badge{}, false
}

// postRow renders one list entry: the author line and a one-line preview.
// A zero badge is not drawn.
func postRow(p thread.Post, preview string, b badge, width int, selected bool, st styles) string {
	if width <= 0 {
		width = minListWidth
	}

	author := lipgloss.NewStyle().Bold(true).Foreground(AuthorColor(p.Author)).Render(p.Author)
	head := author + " " + st.date.Render(p.Date())
	if b.label != "" {
		head += " " + st.badge.Background(b.bg).Render(b.label)
	}
	head = truncateStyled(head, width)

	body := runewidth.Truncate(preview, width, "…")
	if selected {
		marker := st.rowSelected.Render(runewidth.FillRight(body, width))
		return head + "\n" + marker
	}
	return head + "\n" + st.preview.Render(body)
}
