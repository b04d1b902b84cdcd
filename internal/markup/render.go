// Package markup renders the bracket-tag markup used by forum posts.
package markup

import "strings"

// frame is one open tag while parsing. The root frame has no rule.
type frame struct {
	rule     *Rule
	name     string
	tok      token
	rawStart int
	out      strings.Builder
}

type parser struct {
	raw   string
	table *Table
	stack []*frame
}

// Render turns raw markup into a document. It accepts any input: unknown tags
// are kept as literal text, stray closing tags are dropped and tags left open
// are closed at the end of the text.
func Render(raw string) Document {
	return FromHTML(RenderHTML(raw))
}

// RenderHTML renders raw markup with the default formatter table.
func RenderHTML(raw string) string {
	return Formatters.Render(raw)
}

// Render renders raw markup with the rules of t.
func (t *Table) Render(raw string) string {
	p := &parser{raw: raw, table: t, stack: []*frame{{}}}
	for _, tok := range tokenize(raw) {
		switch tok.kind {
		case tokText:
			p.top().out.WriteString(escapeText(tok.raw))
		case tokOpen:
			p.open(tok)
		case tokClose:
			p.close(tok)
		}
	}
	p.closeTo(1, len(raw))
	return p.stack[0].out.String()
}

func (p *parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *parser) open(tok token) {
	set, ok := p.table.lookup(tok.name)
	if !ok {
		p.top().out.WriteString(escapeText(tok.raw))
		return
	}
	rule := set.resolve(tok.hasOption)
	if rule.Kind == Standalone {
		p.top().out.WriteString(rule.Output)
		return
	}
	if set.sameTagCloses() {
		if idx := p.find(tok.name); idx > 0 {
			p.closeTo(idx, tok.offset)
		}
	}
	p.stack = append(p.stack, &frame{
		rule:     rule,
		name:     tok.name,
		tok:      tok,
		rawStart: tok.offset + len(tok.raw),
	})
}

func (p *parser) close(tok token) {
	if _, ok := p.table.lookup(tok.name); !ok {
		p.top().out.WriteString(escapeText(tok.raw))
		return
	}
	idx := p.find(tok.name)
	if idx <= 0 {
		// Closing tag of a known rule with nothing to close.
		return
	}
	p.closeTo(idx, tok.offset)
}

// find returns the stack index of the innermost open frame named name.
func (p *parser) find(name string) int {
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i].name == name {
			return i
		}
	}
	return -1
}

// closeTo pops and renders frames down to and including index idx. end is
// the raw offset where their content stops.
func (p *parser) closeTo(idx, end int) {
	for len(p.stack) > idx && len(p.stack) > 1 {
		f := p.top()
		p.stack = p.stack[:len(p.stack)-1]
		rawInner := ""
		if f.rawStart <= end {
			rawInner = p.raw[f.rawStart:end]
		}
		out := f.rule.apply(Call{
			Name:      f.name,
			Option:    f.tok.option,
			HasOption: f.tok.hasOption,
			Inner:     f.out.String(),
			Raw:       rawInner,
		})
		p.top().out.WriteString(out)
	}
}

var textEscaper = strings.NewReplacer(
	"\r\n", "<br>",
	"\n", "<br>",
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
