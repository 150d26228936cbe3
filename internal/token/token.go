package token

import (
	"slices"
	"sync"

	"pvl/internal/grammar"
	"pvl/internal/source"
)

// Token is a classified lexeme. Grammar is a non-owning reference to the
// grammar the lexeme was produced under.
type Token struct {
	Kind    Kind
	Text    string
	Span    source.Span
	Grammar *grammar.Grammar
}

var defaultGrammar = sync.OnceValue(func() *grammar.Grammar {
	return grammar.New(grammar.PVL)
})

// New classifies text under g. A nil grammar means the base PVL grammar.
func New(text string, g *grammar.Grammar) Token {
	if g == nil {
		g = defaultGrammar()
	}
	t := Token{Text: text, Grammar: g}
	t.Kind = t.classify()
	return t
}

// String returns the lexeme.
func (t Token) String() string { return t.Text }

// Equal reports whether the lexeme is exactly s.
func (t Token) Equal(s string) bool { return t.Text == s }

// Is reports whether the token has one of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

func (t Token) grammar() *grammar.Grammar {
	if t.Grammar == nil {
		return defaultGrammar()
	}
	return t.Grammar
}

func (t Token) classify() Kind {
	switch {
	case t.Text == "":
		return Invalid
	case t.IsComment():
		return Comment
	case t.IsQuotedString():
		return Quoted
	case t.IsReservedChar():
		return Reserved
	case t.IsNumeric():
		return Numeric
	default:
		return Word
	}
}
