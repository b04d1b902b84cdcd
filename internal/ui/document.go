package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/keaton/internal/markup"
	"github.com/kyaoi/keaton/internal/search"
)

const quotePrefix = "│ "

// docLayout is a document laid out for the content viewport.
type docLayout struct {
	content string
	// matchLines holds, per match, the wrapped line the match starts on.
	matchLines []int
	lines      int
}

type docLine struct {
	styled strings.Builder
	plain  strings.Builder
	center bool
}

type lineCol struct {
	line, col int
}

// layoutDocument styles the segments of doc, highlights matches (current is
// the index of the emphasised one, or -1) and wraps the result to width.
// Spoilers stay masked unless reveal is set.
func layoutDocument(doc markup.Document, matches []search.Match, current, width int, st styles, reveal bool) docLayout {
	lines := []*docLine{{}}
	cur := lines[0]
	starts := make([]lineCol, len(matches))
	bounds := matchBounds(matches)

	pos, bi, mi, si := 0, 0, 0, 0
	atLineStart := true
	for _, seg := range doc.Segments {
		text := seg.Text
		for text != "" {
			for si < len(matches) && matches[si].Start <= pos {
				starts[si] = lineCol{len(lines) - 1, cur.plain.Len()}
				si++
			}
			if text[0] == '\n' {
				cur = &docLine{}
				lines = append(lines, cur)
				atLineStart = true
				text = text[1:]
				pos++
				continue
			}

			n := strings.IndexByte(text, '\n')
			if n < 0 {
				n = len(text)
			}
			for bi < len(bounds) && bounds[bi] <= pos {
				bi++
			}
			if bi < len(bounds) && bounds[bi]-pos < n {
				n = bounds[bi] - pos
			}
			chunk := text[:n]

			if atLineStart && seg.Style.Quote > 0 {
				prefix := strings.Repeat(quotePrefix, seg.Style.Quote)
				cur.styled.WriteString(st.quoteBar.Render(prefix))
				cur.plain.WriteString(prefix)
			}
			atLineStart = false
			if seg.Style.Center {
				cur.center = true
			}
			// Starts recorded above point before the quote prefix; fix up the
			// ones that begin exactly here.
			for i := si - 1; i >= 0 && matches[i].Start == pos; i-- {
				starts[i] = lineCol{len(lines) - 1, cur.plain.Len()}
			}

			for mi < len(matches) && matches[mi].End() <= pos {
				mi++
			}
			hit := mi < len(matches) && matches[mi].Start <= pos
			style := chunkStyle(seg.Style, st, reveal, hit, hit && mi == current)
			cur.styled.WriteString(style.Render(chunk))
			cur.plain.WriteString(chunk)

			text = text[n:]
			pos += n
		}
	}

	if doc.Empty() {
		cur.styled.WriteString(st.muted.Render("(empty post)"))
	}

	offsets := make([]int, len(lines))
	var out []string
	for i, l := range lines {
		offsets[i] = len(out)
		wrapped := wrap(l.styled.String(), width)
		for _, sub := range strings.Split(wrapped, "\n") {
			if l.center && width > 0 {
				sub = lipgloss.PlaceHorizontal(width, lipgloss.Center, sub)
			}
			out = append(out, sub)
		}
	}

	matchLines := make([]int, len(matches))
	for i, at := range starts {
		if at.line >= len(lines) {
			continue
		}
		plain := lines[at.line].plain.String()
		end := min(at.col+matches[i].Length, len(plain))
		if sp := strings.IndexByte(plain[end:], ' '); sp >= 0 {
			end += sp
		} else {
			end = len(plain)
		}
		matchLines[i] = offsets[at.line] + strings.Count(wrap(plain[:end], width), "\n")
	}

	return docLayout{
		content:    strings.Join(out, "\n"),
		matchLines: matchLines,
		lines:      len(out),
	}
}

// chunkStyle picks the style of one run of text. A match inside a masked
// spoiler is only underlined so the hidden text stays unreadable.
func chunkStyle(seg markup.Style, st styles, reveal, hit, current bool) lipgloss.Style {
	if seg.Spoiler && !reveal {
		if hit {
			return st.spoiler.Underline(true).Bold(current)
		}
		return st.spoiler
	}
	style := segmentStyle(seg, st)
	if !hit {
		return style
	}
	if current {
		return st.current.Inherit(style)
	}
	return st.match.Inherit(style)
}

func segmentStyle(s markup.Style, st styles) lipgloss.Style {
	style := st.text
	if s.Rule {
		return st.muted
	}
	if s.Bold || s.Heading > 0 {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline || s.Link != "" {
		style = style.Underline(true)
	}
	if s.Heading > 0 || s.Link != "" {
		style = style.Foreground(st.accent)
	}
	if strings.HasPrefix(s.Color, "#") {
		style = style.Foreground(lipgloss.Color(s.Color))
	}
	return style
}

// matchBounds returns the sorted start and end offsets of matches.
func matchBounds(matches []search.Match) []int {
	bounds := make([]int, 0, 2*len(matches))
	for _, m := range matches {
		bounds = append(bounds, m.Start, m.End())
	}
	return bounds
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wrap(s, width, "")
}
