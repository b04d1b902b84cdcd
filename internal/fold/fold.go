// Package fold produces the lowercased, diacritic-free form of text used for
// accent tolerant comparison.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// String lowercases s and removes combining marks ("Canción" -> "cancion").
func String(s string) string {
	if s == "" {
		return ""
	}
	if isPlainASCII(s) {
		return strings.ToLower(s)
	}
	// transform.Chain keeps state, so each call builds its own.
	t := transform.Chain(lower, norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
