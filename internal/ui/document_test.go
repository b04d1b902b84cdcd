package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/keaton/internal/markup"
	"github.com/kyaoi/keaton/internal/search"
)

func plainLayout(t *testing.T, raw, query string, width int) (markup.Document, []search.Match, docLayout) {
	t.Helper()
	doc := markup.Render(raw)
	matches := search.Compile(query).FindAll(doc.Text)
	return doc, matches, layoutDocument(doc, matches, 0, width, newStyles(Themes[0]), true)
}

func TestLayoutKeepsText(t *testing.T) {
	doc, _, layout := plainLayout(t, "[b]Hola[/b] mundo\nsegunda línea", "", 0)
	got := ansi.Strip(layout.content)
	if got != doc.Text {
		t.Errorf("layout text = %q, want %q", got, doc.Text)
	}
	if layout.lines != 2 {
		t.Errorf("lines = %d, want 2", layout.lines)
	}
}

func TestLayoutMatchLines(t *testing.T) {
	raw := "primera\nsegunda\n[i]tercera con zelda[/i]\ncuarta zelda"
	_, matches, layout := plainLayout(t, raw, "zelda", 0)
	if len(matches) != 2 {
		t.Fatalf("matches = %d", len(matches))
	}
	if layout.matchLines[0] != 2 || layout.matchLines[1] != 3 {
		t.Errorf("matchLines = %v, want [2 3]", layout.matchLines)
	}
}

func TestLayoutWrapsAndTracksMatches(t *testing.T) {
	raw := strings.Repeat("palabra ", 10) + "zelda"
	_, _, layout := plainLayout(t, raw, "zelda", 20)
	if layout.lines < 3 {
		t.Fatalf("expected wrapping, got %d lines", layout.lines)
	}
	last := layout.lines - 1
	if layout.matchLines[0] != last {
		t.Errorf("match on line %d, want %d", layout.matchLines[0], last)
	}
	for _, line := range strings.Split(layout.content, "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Errorf("line %q wider than 20 (%d)", ansi.Strip(line), w)
		}
	}
}

func TestLayoutQuotePrefix(t *testing.T) {
	_, _, layout := plainLayout(t, "[quote]citado[/quote]", "", 0)
	if !strings.Contains(ansi.Strip(layout.content), quotePrefix+"citado") {
		t.Errorf("quote prefix missing in %q", ansi.Strip(layout.content))
	}
}

func TestLayoutEmptyDocument(t *testing.T) {
	_, _, layout := plainLayout(t, "", "", 0)
	if !strings.Contains(layout.content, "empty post") {
		t.Errorf("content = %q", layout.content)
	}
}

func TestMaskedSpoilerMatchStaysHidden(t *testing.T) {
	doc := markup.Render("[spoiler]the butler did it[/spoiler]")
	st := newStyles(Themes[0])
	var hidden markup.Style
	for _, seg := range doc.Segments {
		if seg.Style.Spoiler {
			hidden = seg.Style
		}
	}
	if !hidden.Spoiler {
		t.Fatal("no spoiler segment")
	}

	for _, current := range []bool{false, true} {
		got := chunkStyle(hidden, st, false, true, current)
		if got.GetForeground() != got.GetBackground() {
			t.Errorf("current=%v: fg %v differs from bg %v", current, got.GetForeground(), got.GetBackground())
		}
		if got.GetBackground() != st.spoiler.GetBackground() {
			t.Errorf("current=%v: bg = %v, want spoiler mask", current, got.GetBackground())
		}
		if !got.GetUnderline() {
			t.Errorf("current=%v: masked match is not marked", current)
		}
	}

	revealed := chunkStyle(hidden, st, true, true, true)
	if revealed.GetBackground() != st.current.GetBackground() {
		t.Errorf("revealed match bg = %v, want %v", revealed.GetBackground(), st.current.GetBackground())
	}

	matches := search.Compile("butler").FindAll(doc.Text)
	layout := layoutDocument(doc, matches, 0, 0, st, false)
	if len(layout.matchLines) != 1 {
		t.Errorf("matchLines = %v", layout.matchLines)
	}
}
