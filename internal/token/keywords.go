package token

import "golang.org/x/text/cases"

// fold applies Unicode full case folding. A Caser is stateful, so each
// call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func foldEqual(a, b string) bool {
	return fold(a) == fold(b)
}

// IsNone reports whether the token is the grammar's null keyword.
func (t Token) IsNone() bool { return foldEqual(t.Text, t.grammar().NoneKeyword) }

// IsTrue reports whether the token is the grammar's true keyword.
func (t Token) IsTrue() bool { return foldEqual(t.Text, t.grammar().TrueKeyword) }

// IsFalse reports whether the token is the grammar's false keyword.
func (t Token) IsFalse() bool { return foldEqual(t.Text, t.grammar().FalseKeyword) }

// IsBoolean reports whether the token is a true or false keyword.
func (t Token) IsBoolean() bool { return t.IsTrue() || t.IsFalse() }

// IsEndStatement reports whether the token terminates the document.
func (t Token) IsEndStatement() bool {
	f := fold(t.Text)
	for _, kw := range t.grammar().EndStatements {
		if fold(kw) == f {
			return true
		}
	}
	return false
}

// LookupAggregation returns the closing keyword for a block-opening token.
func (t Token) LookupAggregation() (closing string, ok bool) {
	f := fold(t.Text)
	for open, c := range t.grammar().AggregationKeywords {
		if fold(open) == f {
			return c, true
		}
	}
	return "", false
}

// IsBeginAggregation reports whether the token opens a group or object.
func (t Token) IsBeginAggregation() bool {
	_, ok := t.LookupAggregation()
	return ok
}

// IsEndAggregation reports whether the token closes a group or object.
func (t Token) IsEndAggregation() bool {
	f := fold(t.Text)
	for _, c := range t.grammar().AggregationKeywords {
		if fold(c) == f {
			return true
		}
	}
	return false
}

// IsReservedKeyword reports whether the token is any keyword the grammar
// reserves (aggregation keywords and END).
func (t Token) IsReservedKeyword() bool {
	f := fold(t.Text)
	for kw := range t.grammar().ReservedKeywords {
		if fold(kw) == f {
			return true
		}
	}
	return false
}
