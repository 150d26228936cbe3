package grammar

import (
	"fmt"
	"regexp"
)

// Pattern is a precompiled regexp that only accepts whole strings.
// A nil *Pattern never matches; dialects use that to mark a form as illegal.
type Pattern struct {
	Template string
	re       *regexp.Regexp
}

// CompilePattern anchors tmpl at both ends and compiles it.
func CompilePattern(tmpl string) (*Pattern, error) {
	re, err := regexp.Compile(`^(?:` + tmpl + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, tmpl, err)
	}
	return &Pattern{Template: tmpl, re: re}, nil
}

func mustPattern(tmpl string) *Pattern {
	p, err := CompilePattern(tmpl)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether s matches the whole pattern.
func (p *Pattern) Match(s string) bool {
	if p == nil || p.re == nil {
		return false
	}
	return p.re.MatchString(s)
}

// Groups returns the named capture groups of a whole-string match.
func (p *Pattern) Groups(s string) (map[string]string, bool) {
	if p == nil || p.re == nil {
		return nil, false
	}
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for i, name := range p.re.SubexpNames() {
		if name != "" {
			out[name] = m[i]
		}
	}
	return out, true
}

func (p *Pattern) String() string {
	if p == nil {
		return "<none>"
	}
	return p.Template
}

// Non-decimal integers: [sign]radix#[sign]digits#.
const (
	signFrag       = `(?P<sign>[+-]?)`
	secondSignFrag = `(?P<second_sign>[+-]?)`
	wideRadixFrag  = `(?P<radix>[2-9]|1[0-6])`
	anyDigitsFrag  = `(?P<non_decimal>[0-9A-Fa-f]+)`
	binDigitsFrag  = `(?P<non_decimal>[01]+)`
	octDigitsFrag  = `(?P<non_decimal>[0-7]+)`
	// openDigitsFrag matches the digits of a literal still being typed.
	openDigitsFrag = `[0-9A-Fa-f]*`
)

// NumericPatterns groups the non-decimal integer matchers of one dialect.
type NumericPatterns struct {
	// NonDecimalPre matches the literal up to and including the first '#'
	// (and the inner sign where the dialect has one).
	NonDecimalPre *Pattern
	// NonDecimalOpen matches an unterminated literal: prefix plus digits so far.
	NonDecimalOpen *Pattern
	// NonDecimal matches a complete literal of any radix the dialect allows.
	NonDecimal *Pattern
	Binary     *Pattern
	Octal      *Pattern
	Hex        *Pattern
}

// pvlNumeric: sign before the radix, radix 2, 8 or 16.
func pvlNumeric() NumericPatterns {
	pre := signFrag + `(?P<radix>2|8|16)#`
	return NumericPatterns{
		NonDecimalPre:  mustPattern(pre),
		NonDecimalOpen: mustPattern(pre + openDigitsFrag),
		NonDecimal:     mustPattern(pre + anyDigitsFrag + `#`),
		Binary:         mustPattern(signFrag + `(?P<radix>2)#` + binDigitsFrag + `#`),
		Octal:          mustPattern(signFrag + `(?P<radix>8)#` + octDigitsFrag + `#`),
		Hex:            mustPattern(signFrag + `(?P<radix>16)#` + anyDigitsFrag + `#`),
	}
}

// odlNumeric: radix 2-16, the sign sits after the first '#'.
func odlNumeric() NumericPatterns {
	pre := wideRadixFrag + `#` + signFrag
	return NumericPatterns{
		NonDecimalPre:  mustPattern(pre),
		NonDecimalOpen: mustPattern(pre + openDigitsFrag),
		NonDecimal:     mustPattern(pre + anyDigitsFrag + `#`),
		Binary:         mustPattern(`(?P<radix>2)#` + signFrag + binDigitsFrag + `#`),
		Octal:          mustPattern(`(?P<radix>8)#` + signFrag + octDigitsFrag + `#`),
		Hex:            mustPattern(`(?P<radix>16)#` + signFrag + anyDigitsFrag + `#`),
	}
}

// omniNumeric: radix 2-16 with a sign allowed in both positions.
func omniNumeric() NumericPatterns {
	pre := signFrag + wideRadixFrag + `#` + secondSignFrag
	return NumericPatterns{
		NonDecimalPre:  mustPattern(pre),
		NonDecimalOpen: mustPattern(pre + openDigitsFrag),
		NonDecimal:     mustPattern(pre + anyDigitsFrag + `#`),
		Binary:         mustPattern(signFrag + `(?P<radix>2)#` + secondSignFrag + binDigitsFrag + `#`),
		Octal:          mustPattern(signFrag + `(?P<radix>8)#` + secondSignFrag + octDigitsFrag + `#`),
		Hex:            mustPattern(signFrag + `(?P<radix>16)#` + secondSignFrag + anyDigitsFrag + `#`),
	}
}

// Leap seconds are only recognised through these patterns; the time
// layouts cannot express a seconds field of 60.
const (
	hourFrag     = `(?P<hour>0\d|1\d|2[0-3])`
	minuteFrag   = `(?P<minute>[0-5]\d)`
	fracFrag     = `(\.(?P<microsecond>\d+))`
	yearFrag     = `(?P<year>\d{3}[1-9])`
	monthFrag    = `(?P<month>0[1-9]|1[0-2])`
	dayFrag      = `(?P<day>0[1-9]|[12]\d|3[01])`
	doyFrag      = `(?P<doy>(00[1-9]|0[1-9]\d)|[12]\d{2}|3[0-5]\d|36[0-6])`
	leapTimeFrag = hourFrag + `:` + minuteFrag + `:60` + fracFrag + `?Z?`
)

func leapSecondPatterns() (ymd, yj *Pattern) {
	ymd = mustPattern(`(` + yearFrag + `-` + monthFrag + `-` + dayFrag + `T)?` + leapTimeFrag)
	yj = mustPattern(`(` + yearFrag + `-` + doyFrag + `T)?` + leapTimeFrag)
	return ymd, yj
}

// decimalPattern matches signed integers and floats with optional exponent.
var decimalPattern = mustPattern(`[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// IsDecimal reports whether s is a decimal integer or float literal.
// It is dialect independent.
func IsDecimal(s string) bool {
	return decimalPattern.Match(s)
}
