package dialect

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"

	"pvl/internal/diag"
	"pvl/internal/grammar"
	"pvl/internal/source"
	"pvl/internal/token"
)

// Probes are private grammars used only to classify lexemes.
var (
	omniProbe = sync.OnceValue(func() *grammar.Grammar { return grammar.New(grammar.Omni) })
	pvlProbe  = sync.OnceValue(func() *grammar.Grammar { return grammar.New(grammar.PVL) })
)

// ObserveToken records evidence carried by a single token. Tokens are
// expected to come from the Omni grammar, which accepts every construct the
// other dialects have.
func ObserveToken(e *Evidence, tok token.Token) {
	if e == nil {
		return
	}
	switch tok.Kind {
	case token.Comment:
		if strings.HasPrefix(tok.Text, "#") {
			e.Add(Hint{Dialect: grammar.Omni, Score: 6, Code: diag.DetHashComment,
				Reason: "'#' line comment", Span: tok.Span})
		}
	case token.Numeric:
		observeNonDecimal(e, tok)
	case token.Word:
		if token.New(tok.Text, pvlProbe()).IsLeapSecond() {
			reason := fmt.Sprintf("leap second %q", tok.Text)
			e.Add(Hint{Dialect: grammar.PVL, Score: 4, Code: diag.DetLeapSecond, Reason: reason, Span: tok.Span})
			e.Add(Hint{Dialect: grammar.Omni, Score: 2, Code: diag.DetLeapSecond, Reason: reason, Span: tok.Span})
			e.Add(Hint{Dialect: grammar.ODL, Score: -4, Code: diag.DetLeapSecond, Reason: reason, Span: tok.Span})
			return
		}
		RecordWord(e, tok.Text, tok.Span)
	}
}

func observeNonDecimal(e *Evidence, tok token.Token) {
	groups, ok := omniProbe().Numeric.NonDecimal.Groups(tok.Text)
	if !ok {
		return
	}
	switch radix := groups["radix"]; radix {
	case "2", "8", "16":
	default:
		reason := fmt.Sprintf("radix %s in %q", radix, tok.Text)
		e.Add(Hint{Dialect: grammar.ODL, Score: 3, Code: diag.DetWideRadix, Reason: reason, Span: tok.Span})
		e.Add(Hint{Dialect: grammar.Omni, Score: 3, Code: diag.DetWideRadix, Reason: reason, Span: tok.Span})
		e.Add(Hint{Dialect: grammar.PVL, Score: -3, Code: diag.DetWideRadix, Reason: reason, Span: tok.Span})
	}
	if groups["second_sign"] == "" {
		return
	}
	reason := fmt.Sprintf("sign after '#' in %q", tok.Text)
	if groups["sign"] != "" {
		// Only the permissive grammar takes both signs.
		e.Add(Hint{Dialect: grammar.Omni, Score: 4, Code: diag.DetInnerSign, Reason: reason, Span: tok.Span})
		return
	}
	e.Add(Hint{Dialect: grammar.ODL, Score: 3, Code: diag.DetInnerSign, Reason: reason, Span: tok.Span})
	e.Add(Hint{Dialect: grammar.Omni, Score: 2, Code: diag.DetInnerSign, Reason: reason, Span: tok.Span})
	e.Add(Hint{Dialect: grammar.PVL, Score: -3, Code: diag.DetInnerSign, Reason: reason, Span: tok.Span})
}

// ObserveText records document-wide evidence: the first non-ASCII
// character rules out ODL.
func ObserveText(e *Evidence, f *source.File) {
	if e == nil || f == nil {
		return
	}
	for i, r := range string(f.Content) {
		if r < utf8.RuneSelf {
			continue
		}
		start, err := safecast.Conv[uint32](i)
		if err != nil {
			return
		}
		end, err := safecast.Conv[uint32](i + utf8.RuneLen(r))
		if err != nil {
			return
		}
		e.Add(Hint{
			Dialect: grammar.ODL,
			Score:   -10,
			Code:    diag.DetNonASCII,
			Reason:  fmt.Sprintf("non-ASCII character %q", r),
			Span:    source.Span{File: f.ID, Start: start, End: end},
		})
		return
	}
}
