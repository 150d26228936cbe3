package grammar

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Overrides customises a built-in grammar. Unset fields keep the base
// dialect's value. It is usually decoded from TOML:
//
//	dialect = "pvl"
//	comments = [["/*", "*/"], ["#", "\n"]]
//	none_keyword = "N/A"
//	leap_seconds = false
//
//	[patterns]
//	nondecimal_prefix = '(?P<radix>[2-9]|1[0-6])#'
type Overrides struct {
	Dialect            string            `toml:"dialect"`
	Comments           [][]string        `toml:"comments"`
	ReservedCharacters *string           `toml:"reserved_characters"`
	Whitespace         *string           `toml:"whitespace"`
	NoneKeyword        *string           `toml:"none_keyword"`
	TrueKeyword        *string           `toml:"true_keyword"`
	FalseKeyword       *string           `toml:"false_keyword"`
	GroupKeywords      map[string]string `toml:"group_keywords"`
	ObjectKeywords     map[string]string `toml:"object_keywords"`
	EndStatements      []string          `toml:"end_statements"`
	Charset            string            `toml:"charset"`
	LeapSeconds        *bool             `toml:"leap_seconds"`
	Patterns           PatternOverrides  `toml:"patterns"`
}

// PatternOverrides replaces the non-decimal templates. Templates are
// anchored automatically.
type PatternOverrides struct {
	NonDecimalPre string `toml:"nondecimal_prefix"`
	NonDecimal    string `toml:"nondecimal"`
	Binary        string `toml:"binary"`
	Octal         string `toml:"octal"`
	Hex           string `toml:"hex"`
}

// DecodeOverrides parses TOML text. Keys the struct does not know are an error.
func DecodeOverrides(text string) (Overrides, error) {
	var o Overrides
	meta, err := toml.Decode(text, &o)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to parse grammar TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Overrides{}, fmt.Errorf("unknown grammar keys: %s", strings.Join(keys, ", "))
	}
	return o, nil
}

// FromTOML builds a validated grammar from TOML overrides.
func FromTOML(text string) (*Grammar, error) {
	o, err := DecodeOverrides(text)
	if err != nil {
		return nil, err
	}
	return o.Build()
}

// Build applies the overrides to a fresh grammar of the requested dialect
// and validates the result.
func (o Overrides) Build() (*Grammar, error) {
	d, err := ParseDialect(o.Dialect)
	if err != nil {
		return nil, err
	}
	g := New(d)
	if err := o.Apply(g); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply writes the overrides into g in place. g should not be shared with
// running lexers.
func (o Overrides) Apply(g *Grammar) error {
	if o.Comments != nil {
		pairs := make([]CommentPair, 0, len(o.Comments))
		for _, c := range o.Comments {
			if len(c) != 2 {
				return fmt.Errorf("%w: comment entry %q must have exactly two elements", ErrUnsupportedComment, c)
			}
			pairs = append(pairs, CommentPair{Open: c[0], Close: c[1]})
		}
		g.Comments = pairs
	}
	if o.ReservedCharacters != nil {
		g.ReservedCharacters = *o.ReservedCharacters
	}
	if o.Whitespace != nil {
		g.Whitespace = *o.Whitespace
	}
	if o.NoneKeyword != nil {
		g.NoneKeyword = *o.NoneKeyword
	}
	if o.TrueKeyword != nil {
		g.TrueKeyword = *o.TrueKeyword
	}
	if o.FalseKeyword != nil {
		g.FalseKeyword = *o.FalseKeyword
	}
	if o.GroupKeywords != nil {
		g.GroupKeywords = o.GroupKeywords
	}
	if o.ObjectKeywords != nil {
		g.ObjectKeywords = o.ObjectKeywords
	}
	if o.EndStatements != nil {
		g.EndStatements = o.EndStatements
	}
	g.rebuildKeywords()

	if o.Charset != "" {
		cs, err := parseCharset(o.Charset)
		if err != nil {
			return err
		}
		g.Charset = cs
	}
	if o.LeapSeconds != nil {
		if *o.LeapSeconds {
			g.LeapSecondYmd, g.LeapSecondYj = leapSecondPatterns()
		} else {
			g.LeapSecondYmd, g.LeapSecondYj = nil, nil
		}
	}
	return o.Patterns.apply(&g.Numeric)
}

func (po PatternOverrides) apply(n *NumericPatterns) error {
	set := func(dst **Pattern, tmpl string) error {
		if tmpl == "" {
			return nil
		}
		p, err := CompilePattern(tmpl)
		if err != nil {
			return err
		}
		*dst = p
		return nil
	}
	if po.NonDecimalPre != "" {
		if err := set(&n.NonDecimalPre, po.NonDecimalPre); err != nil {
			return err
		}
		if err := set(&n.NonDecimalOpen, po.NonDecimalPre+openDigitsFrag); err != nil {
			return err
		}
	}
	for _, s := range []struct {
		dst  **Pattern
		tmpl string
	}{
		{&n.NonDecimal, po.NonDecimal},
		{&n.Binary, po.Binary},
		{&n.Octal, po.Octal},
		{&n.Hex, po.Hex},
	} {
		if err := set(s.dst, s.tmpl); err != nil {
			return err
		}
	}
	return nil
}
