package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to truncated previews.
const Ellipsis = "..."

var bracketTag = regexp.MustCompile(`\[/?[^\[\]]+\]`)

// StripTags removes bracket tag syntax from raw markup without rendering it.
// It is much cheaper than Render and is what list previews use. Removal
// repeats until nothing changes, since dropping an inner tag can join its
// neighbours into a new one ("[[b]b]" -> "[b]").
func StripTags(raw string) string {
	for {
		out := bracketTag.ReplaceAllString(raw, "")
		if out == raw {
			return out
		}
		raw = out
	}
}

// Preview returns a single line summary of raw markup: tags removed,
// whitespace collapsed, at most max runes followed by Ellipsis when cut.
// A max of zero or less disables truncation.
func Preview(raw string, max int) string {
	text := strings.Join(strings.Fields(StripTags(raw)), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	cut := 0
	for i := range text {
		if max == 0 {
			cut = i
			break
		}
		max--
	}
	return strings.TrimRight(text[:cut], " ") + Ellipsis
}
