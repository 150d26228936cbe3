package grammar

import (
	"fmt"
	"unicode/utf8"
)

// Validate checks that the lexer can work with the grammar. Every failure
// is a configuration error: it is reported before any input is scanned.
func (g *Grammar) Validate() error {
	if err := ValidateComments(g.Comments); err != nil {
		return err
	}
	for open, closing := range g.AggregationKeywords {
		if _, ok := g.ReservedKeywords[closing]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrUnclosedAggregation, open, closing)
		}
	}
	n := g.Numeric
	for name, p := range map[string]*Pattern{
		"nondecimal_prefix": n.NonDecimalPre,
		"nondecimal_open":   n.NonDecimalOpen,
		"nondecimal":        n.NonDecimal,
		"binary":            n.Binary,
		"octal":             n.Octal,
		"hex":               n.Hex,
	} {
		if p == nil || p.re == nil {
			return fmt.Errorf("%w: %s pattern is missing", ErrBadPattern, name)
		}
	}
	return nil
}

// ValidateComments checks a comment-pair table: it must not be empty,
// single-character openers must close with a single character, and the
// only multi-character pair allowed is "/*" "*/".
func ValidateComments(pairs []CommentPair) error {
	if len(pairs) == 0 {
		return ErrNoComments
	}
	for _, p := range pairs {
		if p.IsSingleChar() {
			if utf8.RuneCountInString(p.Close) != 1 {
				return fmt.Errorf("%w: %q closes with %q, expected a single character",
					ErrUnsupportedComment, p.Open, p.Close)
			}
			continue
		}
		if p != BlockComment {
			return fmt.Errorf("%w: only %q %q may span several characters, got %q %q",
				ErrUnsupportedComment, BlockComment.Open, BlockComment.Close, p.Open, p.Close)
		}
	}
	return nil
}
