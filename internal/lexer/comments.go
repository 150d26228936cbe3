package lexer

import (
	"fmt"
	"unicode/utf8"

	"pvl/internal/grammar"
)

// commentState is threaded through the comment helpers. end holds the
// closing character of an open single-character comment; it is noChar
// inside a block comment.
type commentState struct {
	in  bool
	end rune
}

var outside = commentState{end: noChar}

func (s commentState) inBlock() bool { return s.in && s.end == noChar }

// commentInfo is the comment table of a grammar, precomputed once per lexer.
type commentInfo struct {
	singles    map[rune]rune // single-character opener -> closer
	multiChars map[rune]bool // characters of the "/*" "*/" pair
	openers    []string
	closers    []string
}

// has reports whether r may take part in a comment delimiter.
func (ci commentInfo) has(r rune) bool {
	_, single := ci.singles[r]
	return single || ci.multiChars[r]
}

// prepareComments validates pairs and precomputes the lookup tables.
func prepareComments(pairs []grammar.CommentPair) (commentInfo, error) {
	if err := grammar.ValidateComments(pairs); err != nil {
		return commentInfo{}, err
	}
	ci := commentInfo{
		singles:    make(map[rune]rune),
		multiChars: make(map[rune]bool),
	}
	for _, p := range pairs {
		ci.openers = append(ci.openers, p.Open)
		ci.closers = append(ci.closers, p.Close)
		if p.IsSingleChar() {
			open, _ := utf8.DecodeRuneInString(p.Open)
			closing, _ := utf8.DecodeRuneInString(p.Close)
			ci.singles[open] = closing
			continue
		}
		for _, r := range p.Open + p.Close {
			ci.multiChars[r] = true
		}
	}
	for r := range ci.singles {
		if ci.multiChars[r] {
			return commentInfo{}, fmt.Errorf("%w: %q opens a comment and is part of %q %q",
				grammar.ErrUnsupportedComment, r, grammar.BlockComment.Open, grammar.BlockComment.Close)
		}
	}
	return ci, nil
}

// lexSingleCharComment handles c for single-character comment pairs.
// Inside a comment every character is kept and the closer ends it.
func lexSingleCharComment(c rune, lexeme []byte, st commentState, singles map[rune]rune) ([]byte, commentState) {
	if st.in {
		lexeme = utf8.AppendRune(lexeme, c)
		if c == st.end {
			return lexeme, outside
		}
		return lexeme, st
	}
	if end, ok := singles[c]; ok {
		return utf8.AppendRune(lexeme, c), commentState{in: true, end: end}
	}
	return lexeme, st
}

// lexMultiCharComment handles c for the "/*" "*/" pair. The '/' of an
// opener is held back until the following '*' appends both; the '/' of a
// closer was already appended with its '*'.
func lexMultiCharComment(c, prev, next rune, lexeme []byte, st commentState) ([]byte, commentState) {
	switch c {
	case '*':
		switch {
		case st.in && next == '/':
			return append(lexeme, "*/"...), outside
		case st.in:
			return append(lexeme, '*'), st
		case prev == '/':
			return append(lexeme, "/*"...), commentState{in: true, end: noChar}
		case next == '/':
			// A stray closer outside a comment is kept whole.
			return append(lexeme, "*/"...), outside
		default:
			return append(lexeme, '*'), st
		}
	case '/':
		if st.in {
			return append(lexeme, '/'), st
		}
		if prev != '*' && next != '*' {
			return append(lexeme, '/'), st
		}
		return lexeme, st
	}
	if st.in {
		return utf8.AppendRune(lexeme, c), st
	}
	return lexeme, st
}

// lexComment dispatches c to the helper that owns the current state.
func lexComment(c, prev, next rune, lexeme []byte, st commentState, ci commentInfo) ([]byte, commentState) {
	switch {
	case st.inBlock():
		return lexMultiCharComment(c, prev, next, lexeme, st)
	case st.in:
		return lexSingleCharComment(c, lexeme, st, ci.singles)
	case ci.multiChars[c]:
		return lexMultiCharComment(c, prev, next, lexeme, st)
	default:
		return lexSingleCharComment(c, lexeme, st, ci.singles)
	}
}
