package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Divider is the text that stands in for <hr> in the plain text projection.
const Divider = "────────────────"

// Style describes how a run of document text is presented.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Heading   int
	Color     string
	Quote     int
	Link      string
	Spoiler   bool
	Center    bool
	Rule      bool
}

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

// Document is a rendered post. Text is the plain text a reader sees; match
// offsets refer to it. Segments split Text into styled runs and always
// concatenate back to Text.
type Document struct {
	HTML     string
	Text     string
	Segments []Segment
}

// Empty reports whether the document has no visible text.
func (d Document) Empty() bool {
	return d.Text == ""
}

type element struct {
	tag   string
	style Style
}

type projector struct {
	text      strings.Builder
	segments  []Segment
	stack     []element
	needBreak bool
}

// FromHTML builds the document for already rendered HTML.
func FromHTML(src string) Document {
	p := &projector{}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return Document{HTML: src, Text: p.text.String(), Segments: p.segments}
		case html.TextToken:
			p.write(string(z.Text()), p.style())
		case html.StartTagToken:
			p.start(z, false)
		case html.SelfClosingTagToken:
			p.start(z, true)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.end(string(name))
		}
	}
}

func (p *projector) style() Style {
	if len(p.stack) == 0 {
		return Style{}
	}
	return p.stack[len(p.stack)-1].style
}

func (p *projector) start(z *html.Tokenizer, selfClosing bool) {
	name, hasAttr := z.TagName()
	tag := string(name)
	attrs := map[string]string{}
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = z.TagAttr()
		attrs[string(k)] = string(v)
	}

	st := p.style()
	switch tag {
	case "br":
		p.newline()
		return
	case "hr":
		p.block()
		ruled := st
		ruled.Rule = true
		p.write(Divider, ruled)
		p.block()
		return
	case "img":
		img := st
		img.Link = attrs["src"]
		if alt := attrs["alt"]; alt != "" {
			p.write(alt, img)
		}
		return
	case "b", "strong":
		st.Bold = true
	case "i", "em":
		st.Italic = true
	case "u":
		st.Underline = true
	case "h1", "h2", "h3":
		st.Heading = int(tag[1] - '0')
		st.Bold = true
		p.block()
	case "blockquote":
		st.Quote++
		p.block()
	case "details":
		st.Spoiler = true
		p.block()
	case "summary":
		st.Spoiler = false
		p.block()
	case "div", "p":
		if strings.Contains(attrs["style"], "text-align:center") {
			st.Center = true
		}
		p.block()
	case "a":
		st.Link = attrs["href"]
	}
	if c := styleColor(attrs["style"]); c != "" {
		st.Color = c
	}
	if selfClosing {
		return
	}
	p.stack = append(p.stack, element{tag: tag, style: st})
}

func (p *projector) end(tag string) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].tag != tag {
			continue
		}
		p.stack = p.stack[:i]
		switch tag {
		case "h1", "h2", "h3", "blockquote", "details", "summary", "div", "p":
			p.block()
		}
		return
	}
}

// block asks for the next text to start on a fresh line.
func (p *projector) block() {
	p.needBreak = true
}

func (p *projector) newline() {
	p.needBreak = false
	p.append("\n", Style{})
}

func (p *projector) write(s string, st Style) {
	if s == "" {
		return
	}
	if p.needBreak {
		p.needBreak = false
		if n := p.text.Len(); n > 0 && !strings.HasSuffix(p.text.String(), "\n") {
			p.append("\n", Style{})
		}
	}
	p.append(s, st)
}

func (p *projector) append(s string, st Style) {
	p.text.WriteString(s)
	if n := len(p.segments); n > 0 && p.segments[n-1].Style == st {
		p.segments[n-1].Text += s
		return
	}
	p.segments = append(p.segments, Segment{Text: s, Style: st})
}

// styleColor pulls the color out of an inline style attribute.
func styleColor(style string) string {
	for _, decl := range strings.Split(style, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(key) != "color" {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "inherit" {
			return ""
		}
		return value
	}
	return ""
}
