// Package search finds text in threads and in rendered posts without caring
// about letter case or accents.
package search

import (
	"regexp"
	"strings"

	"github.com/kyaoi/keaton/internal/fold"
)

// accentGroups lists, per base letter, the variants a query letter stands for.
var accentGroups = map[rune]string{
	'a': "aáàäâ",
	'e': "eéèëê",
	'i': "iíìïî",
	'o': "oóòöô",
	'u': "uúùüû",
	'n': "nñ",
	'c': "cç",
}

// Pattern is a compiled query. The zero value and the pattern of an empty
// query match nothing.
type Pattern struct {
	query string
	re    *regexp.Regexp
}

// Compile builds the accent and case insensitive pattern for a literal query.
func Compile(query string) *Pattern {
	if query == "" {
		return &Pattern{}
	}
	expr := Expression(query)
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		// Every rune is either a class or quoted, so this is unreachable in
		// practice; fall back to an exact literal search.
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}
	return &Pattern{query: query, re: re}
}

// Expression returns the regular expression source used for query. The query
// is folded first, so an accented letter stands for its whole group too.
func Expression(query string) string {
	var b strings.Builder
	for _, r := range fold.String(query) {
		group, ok := accentGroups[r]
		if !ok {
			b.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		b.WriteByte('[')
		b.WriteString(group)
		b.WriteString(strings.ToUpper(group))
		b.WriteString(`]\p{Mn}*`)
	}
	return b.String()
}

// Query returns the text the pattern was compiled from.
func (p *Pattern) Query() string {
	if p == nil {
		return ""
	}
	return p.query
}

// Empty reports whether the pattern stands for "no active search".
func (p *Pattern) Empty() bool {
	return p == nil || p.re == nil
}

// String returns the regular expression, or "" for an empty pattern.
func (p *Pattern) String() string {
	if p.Empty() {
		return ""
	}
	return p.re.String()
}

// FindAll returns every non-overlapping match in text, left to right.
func (p *Pattern) FindAll(text string) []Match {
	if p.Empty() || text == "" {
		return nil
	}
	locs := p.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		if loc[1] == loc[0] {
			continue
		}
		matches = append(matches, Match{Start: loc[0], Length: loc[1] - loc[0]})
	}
	return matches
}

// MatchString reports whether text contains a match.
func (p *Pattern) MatchString(text string) bool {
	return !p.Empty() && p.re.MatchString(text)
}
