package app

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kyaoi/keaton/internal/markup"
	"github.com/kyaoi/keaton/internal/search"
	"github.com/kyaoi/keaton/internal/thread"
)

// ErrPostNotFound is returned when a post id is not part of a thread.
var ErrPostNotFound = errors.New("post not found")

var matchStyle = lipgloss.NewStyle().Reverse(true)

// List writes the threads of threadsDir as a table.
func List(w io.Writer, threadsDir string) error {
	entries, err := thread.NewCatalog(threadsDir).List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "no thread files in %s\n", threadsDir)
		return err
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		id := ""
		if e.HasID {
			id = strconv.FormatInt(e.ID, 10)
		}
		rows[i] = []string{id, e.Name, e.File}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "THREAD", "FILE").
		Rows(rows...)
	_, err = fmt.Fprintln(w, t.String())
	return err
}

// RenderPost writes the plain text of one post, or its HTML.
func RenderPost(w io.Writer, t *thread.Thread, postID int64, asHTML bool) error {
	p, err := findPost(t, postID)
	if err != nil {
		return err
	}
	if asHTML {
		_, err = fmt.Fprintln(w, markup.RenderHTML(p.Body))
		return err
	}
	doc := markup.Render(p.Body)
	_, err = fmt.Fprintf(w, "%s\n\n%s\n", postLabel(p), doc.Text)
	return err
}

// Grep writes one line per post of t matching query and returns how many
// posts matched. Posts must have been folded.
func Grep(w io.Writer, t *thread.Thread, query string, previewLength int) (int, error) {
	hits := search.Filter(t.Posts, query)
	for _, idx := range hits {
		p := t.Posts[idx]
		if _, err := fmt.Fprintf(w, "%s: %s\n", postLabel(p), markup.Preview(p.Body, previewLength)); err != nil {
			return len(hits), err
		}
	}
	return len(hits), nil
}

// Find searches the rendered text of one post and writes every match with
// its line. It returns the number of matches.
func Find(w io.Writer, t *thread.Thread, postID int64, query string) (int, error) {
	p, err := findPost(t, postID)
	if err != nil {
		return 0, err
	}
	doc := markup.Render(p.Body)
	nav := search.NewNavigator()
	nav.Search(doc.Text, search.Compile(strings.TrimSpace(query)))
	for {
		m, ok := nav.Next(false)
		if !ok {
			break
		}
		line, col, text := lineOf(doc.Text, m)
		if _, err := fmt.Fprintf(w, "(%s) %d:%d: %s%s%s\n", nav.Status(), line, col,
			text[:col-1], matchStyle.Render(text[col-1:col-1+m.Length]), text[col-1+m.Length:]); err != nil {
			return len(nav.Matches()), err
		}
		if nav.Current() == len(nav.Matches())-1 {
			break
		}
	}
	return len(nav.Matches()), nil
}

// lineOf returns the 1-based line and byte column of m and the text of that
// line. A match that runs past a newline extends the returned line to its end.
func lineOf(text string, m search.Match) (line, col int, lineText string) {
	start := strings.LastIndexByte(text[:m.Start], '\n') + 1
	end := strings.IndexByte(text[m.Start:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += m.Start
	}
	if end < m.End() {
		end = m.End()
	}
	return strings.Count(text[:m.Start], "\n") + 1, m.Start - start + 1, text[start:end]
}

func findPost(t *thread.Thread, postID int64) (thread.Post, error) {
	idx := t.IndexOf(postID)
	if idx < 0 {
		return thread.Post{}, fmt.Errorf("%d in %s: %w", postID, t.Name, ErrPostNotFound)
	}
	return t.Posts[idx], nil
}

func postLabel(p thread.Post) string {
	return fmt.Sprintf("#%d %s, %s", p.ID, p.Author, p.Date())
}
