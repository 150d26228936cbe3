package token

import (
	"strings"
	"time"
	"unicode/utf8"

	"pvl/internal/grammar"
)

// single returns the only rune of s.
func single(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, false
	}
	return r, true
}

// IsComment reports whether the token is a comment. A single-character
// comment that runs into the end of the document has no closing character.
func (t Token) IsComment() bool {
	for _, p := range t.grammar().Comments {
		if !strings.HasPrefix(t.Text, p.Open) {
			continue
		}
		if p.IsSingleChar() {
			return true
		}
		if len(t.Text) >= len(p.Open)+len(p.Close) && strings.HasSuffix(t.Text, p.Close) {
			return true
		}
	}
	return false
}

// IsUnterminatedComment reports whether the token opens a multi-character
// comment that never closes, as the lexer yields one at the end of the
// document. Such a token keeps the Word kind.
func (t Token) IsUnterminatedComment() bool {
	for _, p := range t.grammar().Comments {
		if p.IsSingleChar() || !strings.HasPrefix(t.Text, p.Open) {
			continue
		}
		if len(t.Text) < len(p.Open)+len(p.Close) || !strings.HasSuffix(t.Text, p.Close) {
			return true
		}
	}
	return false
}

// IsQuotedString reports whether the token starts and ends with the same quote.
func (t Token) IsQuotedString() bool {
	if len(t.Text) < 2 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(t.Text)
	last, _ := utf8.DecodeLastRuneInString(t.Text)
	return first == last && t.grammar().IsQuote(first)
}

// IsReservedChar reports whether the token is exactly one reserved character.
func (t Token) IsReservedChar() bool {
	r, ok := single(t.Text)
	return ok && t.grammar().IsReserved(r)
}

// IsDelimiter reports whether the token is a statement delimiter.
func (t Token) IsDelimiter() bool {
	r, ok := single(t.Text)
	return ok && t.grammar().IsDelimiter(r)
}

// IsQuote reports whether the token is a lone quote character.
func (t Token) IsQuote() bool {
	r, ok := single(t.Text)
	return ok && t.grammar().IsQuote(r)
}

// IsSpace reports whether the token is non-empty and only whitespace.
func (t Token) IsSpace() bool {
	if t.Text == "" {
		return false
	}
	g := t.grammar()
	for _, r := range t.Text {
		if !g.IsWhitespace(r) {
			return false
		}
	}
	return true
}

// IsWSC reports whether the token is whitespace or a comment.
func (t Token) IsWSC() bool {
	return t.IsSpace() || t.IsComment()
}

// IsNumeric reports whether the token is a decimal or non-decimal number
// under the token's grammar.
func (t Token) IsNumeric() bool {
	return t.IsDecimal() || t.IsNonDecimal()
}

// IsDecimal reports whether the token is a decimal integer or float.
func (t Token) IsDecimal() bool {
	return grammar.IsDecimal(t.Text)
}

// IsNonDecimal reports whether the token is a radix#digits# integer whose
// digits are all valid for its radix.
func (t Token) IsNonDecimal() bool {
	groups, ok := t.grammar().Numeric.NonDecimal.Groups(t.Text)
	if !ok {
		return false
	}
	return digitsFitRadix(groups["non_decimal"], groups["radix"])
}

func digitsFitRadix(digits, radixText string) bool {
	radix := 0
	for _, c := range radixText {
		radix = radix*10 + int(c-'0')
	}
	if radix < 2 || digits == "" {
		return false
	}
	for _, c := range digits {
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'a' && c <= 'f':
			v = int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = int(c-'A') + 10
		default:
			return false
		}
		if v >= radix {
			return false
		}
	}
	return true
}

// IsBinary reports whether the token is a radix-2 integer.
func (t Token) IsBinary() bool { return t.grammar().Numeric.Binary.Match(t.Text) }

// IsOctal reports whether the token is a radix-8 integer.
func (t Token) IsOctal() bool { return t.grammar().Numeric.Octal.Match(t.Text) }

// IsHex reports whether the token is a radix-16 integer.
func (t Token) IsHex() bool { return t.grammar().Numeric.Hex.Match(t.Text) }

// IsLeapSecond reports whether the token is a time with 60 seconds that
// the grammar accepts.
func (t Token) IsLeapSecond() bool {
	return t.grammar().MatchLeapSecond(t.Text)
}

// IsDate reports whether the token is a calendar or day-of-year date.
func (t Token) IsDate() bool {
	return matchLayouts(t.grammar().DateLayouts, t.Text)
}

// IsTime reports whether the token is a time of day.
func (t Token) IsTime() bool {
	if matchLayouts(t.grammar().TimeLayouts, t.Text) {
		return true
	}
	return !strings.Contains(t.Text, "T") && t.IsLeapSecond()
}

// IsDateTime reports whether the token is a combined date and time.
func (t Token) IsDateTime() bool {
	if matchLayouts(t.grammar().DateTimeLayouts, t.Text) {
		return true
	}
	return strings.Contains(t.Text, "T") && t.IsLeapSecond()
}

// IsTemporal reports whether the token is any date, time or date-time.
func (t Token) IsTemporal() bool {
	return t.IsDate() || t.IsTime() || t.IsDateTime()
}

func matchLayouts(layouts []string, s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	for _, l := range layouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}

// IsParameterName reports whether the token may name a parameter: it is
// not a reserved keyword, number, date or time, and has no reserved or
// whitespace characters.
func (t Token) IsParameterName() bool {
	if t.Text == "" || t.IsComment() || t.IsUnterminatedComment() || t.IsQuotedString() {
		return false
	}
	g := t.grammar()
	for _, r := range t.Text {
		if g.IsReserved(r) || g.IsWhitespace(r) {
			return false
		}
	}
	if t.IsReservedKeyword() || t.IsNumeric() || t.IsTemporal() {
		return false
	}
	return true
}
