package markup

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// tagLexer splits markup into tags and text. Every byte of the input belongs
// to exactly one token: "[" that does not start a well-formed tag is a
// Bracket token.
var tagLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Close", Pattern: `\[/[A-Za-z][A-Za-z0-9]*\]`},
	{Name: "Open", Pattern: `\[[A-Za-z][A-Za-z0-9]*(?:=[^\[\]\r\n]*)?\]`},
	{Name: "Text", Pattern: `[^\[]+`},
	{Name: "Bracket", Pattern: `\[`},
})

var (
	symbols     = tagLexer.Symbols()
	closeType   = symbols["Close"]
	openType    = symbols["Open"]
	textType    = symbols["Text"]
	bracketType = symbols["Bracket"]
)

type tokenKind int

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
)

type token struct {
	kind      tokenKind
	raw       string
	name      string
	option    string
	hasOption bool
	offset    int
}

// tokenize never fails; should the lexer reject the input, the whole input
// becomes a single text token.
func tokenize(raw string) []token {
	lex, err := tagLexer.LexString("", raw)
	if err != nil {
		return []token{{kind: tokText, raw: raw}}
	}
	lexed, err := lexer.ConsumeAll(lex)
	if err != nil {
		return []token{{kind: tokText, raw: raw}}
	}

	tokens := make([]token, 0, len(lexed))
	for _, lt := range lexed {
		switch lt.Type {
		case openType:
			tokens = append(tokens, openToken(lt.Value, lt.Pos.Offset))
		case closeType:
			tokens = append(tokens, token{
				kind:   tokClose,
				raw:    lt.Value,
				name:   strings.ToLower(lt.Value[2 : len(lt.Value)-1]),
				offset: lt.Pos.Offset,
			})
		case textType, bracketType:
			tokens = append(tokens, token{kind: tokText, raw: lt.Value, offset: lt.Pos.Offset})
		}
	}
	return tokens
}

func openToken(raw string, offset int) token {
	inner := raw[1 : len(raw)-1]
	name, option, hasOption := strings.Cut(inner, "=")
	if hasOption {
		option = unquote(strings.TrimSpace(option))
	}
	return token{
		kind:      tokOpen,
		raw:       raw,
		name:      strings.ToLower(name),
		option:    option,
		hasOption: hasOption && option != "",
		offset:    offset,
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
