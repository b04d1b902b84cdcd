package markup

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Kind selects how a Rule turns a tag into output.
type Kind int

const (
	// Simple wraps the rendered inner content in a fixed open/close pair.
	Simple Kind = iota
	// Standalone emits fixed output and takes no content or closing tag.
	Standalone
	// Attributed hands option and content to a rule specific function.
	Attributed
)

// Call is what an attributed rule receives.
type Call struct {
	Name      string
	Option    string
	HasOption bool
	// Inner is the rendered content between the tags.
	Inner string
	// Raw is the unrendered source text between the tags.
	Raw string
}

// Rule is one entry of the formatter table.
type Rule struct {
	Name string
	Kind Kind

	Open, Close string
	Output      string
	Render      func(Call) string

	// SameTagCloses makes a new open tag of the same name close a still open
	// one instead of nesting inside it.
	SameTagCloses bool
	// Strip trims whitespace and line breaks around the inner content.
	Strip bool
}

func (r *Rule) apply(c Call) string {
	if r.Strip {
		c.Inner = trimRendered(c.Inner)
		c.Raw = strings.TrimSpace(c.Raw)
	}
	switch r.Kind {
	case Standalone:
		return r.Output
	case Attributed:
		return r.Render(c)
	default:
		return r.Open + c.Inner + r.Close
	}
}

// ruleSet holds the forms registered under one tag name.
type ruleSet struct {
	plain      *Rule
	attributed *Rule
}

// resolve picks the form for a tag. The attributed form always wins when an
// option is present; the plain form is used only without one.
func (s ruleSet) resolve(hasOption bool) *Rule {
	switch {
	case hasOption && s.attributed != nil:
		return s.attributed
	case s.plain != nil:
		return s.plain
	default:
		return s.attributed
	}
}

// sameTagCloses reports whether any form of the tag closes on reopen.
func (s ruleSet) sameTagCloses() bool {
	return (s.plain != nil && s.plain.SameTagCloses) ||
		(s.attributed != nil && s.attributed.SameTagCloses)
}

// Table is an immutable tag name -> rule mapping. It is safe to share.
type Table struct {
	rules map[string]ruleSet
}

func newTable(rules ...Rule) *Table {
	t := &Table{rules: make(map[string]ruleSet, len(rules))}
	for i := range rules {
		r := &rules[i]
		set := t.rules[r.Name]
		if r.Kind == Attributed {
			set.attributed = r
		} else {
			set.plain = r
		}
		t.rules[r.Name] = set
	}
	return t
}

func (t *Table) lookup(name string) (ruleSet, bool) {
	s, ok := t.rules[name]
	return s, ok
}

// legacyColors maps colors common in old exports to ones that stay readable
// on both dark and light themes.
var legacyColors = map[string]string{
	"#3366cc": "#2980b9",
	"#ffa500": "#a89c4f",
	"#182319": "#555555",
}

// NormalizeColor resolves a [color] option.
func NormalizeColor(value string) string {
	color := strings.ToLower(strings.TrimSpace(value))
	if color == "" {
		return "inherit"
	}
	if mapped, ok := legacyColors[color]; ok {
		return mapped
	}
	return color
}

// SizeValue parses a [size] option, defaulting to 100.
func SizeValue(option string) int {
	n, err := strconv.Atoi(strings.TrimSpace(option))
	if err != nil {
		return 100
	}
	return n
}

func renderSize(c Call) string {
	size := SizeValue(c.Option)
	switch {
	case size >= 200:
		return "<h1>" + c.Inner + "</h1>"
	case size >= 150:
		return "<h2>" + c.Inner + "</h2>"
	case size >= 120:
		return "<h3>" + c.Inner + "</h3>"
	default:
		return fmt.Sprintf(`<span style="font-size:%d%%">%s</span>`, size, c.Inner)
	}
}

func renderQuote(c Call) string {
	return `<blockquote class="attributed"><b>` + html.EscapeString(c.Option) +
		` said:</b><br>` + c.Inner + `</blockquote>`
}

func renderColor(c Call) string {
	return `<span style="color:` + html.EscapeString(NormalizeColor(c.Option)) + `">` + c.Inner + `</span>`
}

// CleanURL decodes HTML entities and trims whitespace. Old exports carry
// targets such as "http&#58;//x&#46;com" that would otherwise break.
func CleanURL(raw string) string {
	return strings.TrimSpace(html.UnescapeString(raw))
}

func renderImage(c Call) string {
	u := CleanURL(c.Raw)
	if u == "" && c.HasOption {
		u = CleanURL(c.Option)
	}
	if u == "" {
		return ""
	}
	attr := html.EscapeString(u)
	return `<a href="` + attr + `"><img src="` + attr + `" alt="` + attr +
		`" style="max-width:100%; max-height:400px;"></a>`
}

func renderLink(c Call) string {
	target := c.Raw
	if c.HasOption && strings.TrimSpace(c.Option) != "" {
		target = c.Option
	}
	u := CleanURL(target)
	if u == "" {
		return c.Inner
	}
	label := c.Inner
	if strings.TrimSpace(label) == "" {
		label = html.EscapeString(u)
	}
	return `<a href="` + html.EscapeString(u) + `">` + label + `</a>`
}

func renderYouTube(c Call) string {
	value := c.Raw
	if c.HasOption && strings.TrimSpace(c.Option) != "" {
		value = c.Option
	}
	id := VideoID(CleanURL(value))
	if id == "" {
		return ""
	}
	href := "https://www.youtube.com/watch?v=" + url.QueryEscape(id)
	return `<a href="` + html.EscapeString(href) + `" style="color:#e74c3c; text-decoration:none;">Watch on YouTube</a>`
}

// VideoID extracts the video id from a bare id or a watch/short link.
func VideoID(value string) string {
	if !strings.Contains(value, "/") {
		return value
	}
	u, err := url.Parse(value)
	if err != nil {
		return value
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host == "youtu.be" || strings.HasPrefix(u.Path, "/embed/") || strings.HasPrefix(u.Path, "/shorts/") {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		return parts[len(parts)-1]
	}
	return value
}

func renderDivider(Call) string {
	return "<hr>"
}

// Formatters is the fixed tag table used by Render.
var Formatters = newTable(
	Rule{Name: "b", Kind: Simple, Open: "<b>", Close: "</b>"},
	Rule{Name: "i", Kind: Simple, Open: "<i>", Close: "</i>"},
	Rule{Name: "u", Kind: Simple, Open: "<u>", Close: "</u>"},
	Rule{Name: "dice", Kind: Simple, Open: `<p style="color:#2980b9">Dice roll: `, Close: "</p>"},

	Rule{Name: "hr", Kind: Standalone, Output: "<hr>"},
	Rule{Name: "lh", Kind: Attributed, Render: renderDivider},

	Rule{Name: "quote", Kind: Simple, Open: "<blockquote>", Close: "</blockquote>", SameTagCloses: true, Strip: true},
	Rule{Name: "quote", Kind: Attributed, Render: renderQuote, SameTagCloses: true, Strip: true},

	Rule{Name: "color", Kind: Attributed, Render: renderColor, Strip: true},
	Rule{Name: "size", Kind: Attributed, Render: renderSize, Strip: true},
	Rule{Name: "spoiler", Kind: Simple, Open: "<details><summary><i>Spoiler</i></summary>", Close: "</details>", Strip: true},

	Rule{Name: "img", Kind: Attributed, Render: renderImage, Strip: true},
	Rule{Name: "image", Kind: Attributed, Render: renderImage, Strip: true},
	Rule{Name: "imagen", Kind: Attributed, Render: renderImage, Strip: true},
	Rule{Name: "picture", Kind: Attributed, Render: renderImage, Strip: true},
	Rule{Name: "url", Kind: Attributed, Render: renderLink, SameTagCloses: true, Strip: true},
	Rule{Name: "link", Kind: Attributed, Render: renderLink, SameTagCloses: true, Strip: true},
	Rule{Name: "youtube", Kind: Attributed, Render: renderYouTube, Strip: true},

	Rule{Name: "center", Kind: Simple, Open: `<div style="text-align:center">`, Close: "</div>", Strip: true},
	Rule{Name: "centre", Kind: Simple, Open: `<div style="text-align:center">`, Close: "</div>", Strip: true},
)

func trimRendered(s string) string {
	for {
		t := strings.TrimSpace(s)
		t = strings.TrimPrefix(t, "<br>")
		t = strings.TrimSuffix(t, "<br>")
		if t == s {
			return s
		}
		s = t
	}
}
