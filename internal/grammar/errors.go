package grammar

import "errors"

var (
	// ErrMultiRune is returned by CharAllowed for input that is not exactly one code point.
	ErrMultiRune = errors.New("expected a single character")
	// ErrNoComments reports an empty comment-pair table.
	ErrNoComments = errors.New("comment pair table is empty")
	// ErrUnsupportedComment reports a comment pair the lexer cannot match.
	ErrUnsupportedComment = errors.New("unsupported comment pair")
	// ErrUnclosedAggregation reports an aggregation keyword whose closing keyword is not reserved.
	ErrUnclosedAggregation = errors.New("aggregation keyword has no reserved closing keyword")
	// ErrBadPattern reports a missing or malformed pattern template.
	ErrBadPattern = errors.New("bad pattern")
)
