package search

import "fmt"

// Match locates one hit in the plain text of a document. Offsets are bytes.
type Match struct {
	Start  int
	Length int
}

// End returns the offset just past the match.
func (m Match) End() int {
	return m.Start + m.Length
}

// Navigator holds the matches of the last search and which one is current.
type Navigator struct {
	matches []Match
	current int
	pattern *Pattern
}

// NewNavigator returns a navigator with no active search.
func NewNavigator() *Navigator {
	return &Navigator{current: -1}
}

// Search scans text with p and replaces the match list. The current index is
// reset to none; call Next to move to the first match.
func (n *Navigator) Search(text string, p *Pattern) []Match {
	n.pattern = p
	n.matches = p.FindAll(text)
	n.current = -1
	return n.matches
}

// Reset clears the search.
func (n *Navigator) Reset() {
	n.matches = nil
	n.pattern = nil
	n.current = -1
}

// Active reports whether a non-empty query is in effect.
func (n *Navigator) Active() bool {
	return !n.pattern.Empty()
}

// Pattern returns the pattern of the last search, or nil.
func (n *Navigator) Pattern() *Pattern {
	return n.pattern
}

// Matches returns the matches in navigation order.
func (n *Navigator) Matches() []Match {
	return n.matches
}

// Current returns the index of the current match, or -1.
func (n *Navigator) Current() int {
	return n.current
}

// Next moves to the following match. With wrap the last match is followed by
// the first; without it the index stays on the last match.
func (n *Navigator) Next(wrap bool) (Match, bool) {
	total := len(n.matches)
	if total == 0 {
		return Match{}, false
	}
	switch {
	case n.current < 0:
		n.current = 0
	case n.current+1 < total:
		n.current++
	case wrap:
		n.current = 0
	}
	return n.matches[n.current], true
}

// Previous moves to the preceding match, wrapping from the first to the last.
// From no selection it goes to the last match.
func (n *Navigator) Previous(wrap bool) (Match, bool) {
	total := len(n.matches)
	if total == 0 {
		return Match{}, false
	}
	switch {
	case n.current < 0:
		n.current = total - 1
	case n.current > 0:
		n.current--
	case wrap:
		n.current = total - 1
	}
	return n.matches[n.current], true
}

// Selection returns the caret span of the current match.
func (n *Navigator) Selection() (Match, bool) {
	if n.current < 0 || n.current >= len(n.matches) {
		return Match{}, false
	}
	return n.matches[n.current], true
}

// Position returns the 1-based current index and the match count. The index
// is 0 when nothing is selected.
func (n *Navigator) Position() (current, total int) {
	return n.current + 1, len(n.matches)
}

// Status formats Position as "current/total".
func (n *Navigator) Status() string {
	current, total := n.Position()
	return fmt.Sprintf("%d/%d", current, total)
}
