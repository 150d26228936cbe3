package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"pvl/internal/lexer"
	"pvl/internal/source"
	"pvl/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a token stream
// lexed from sf:
// 1) every token before EOF is non-empty and has a non-empty span in sf
// 2) spans are within content bounds and strictly ordered without overlap
// 3) an EOF token, if present, is last and sits at the end of the content
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return errors.New("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		if tok.Kind == token.EOF {
			if i != len(tokens)-1 {
				return fmt.Errorf("token %d: EOF is not last", i)
			}
			if sp.Start != lenContent || sp.End != lenContent {
				return fmt.Errorf("EOF span %v, want %d:%d", sp, lenContent, lenContent)
			}
			continue
		}
		if tok.Text == "" || sp.Empty() {
			return fmt.Errorf("token %d: empty token %q at %v", i, tok.Text, sp)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckLexerError verifies that a lexer error is positioned inside sf and
// that its line and column agree with the document's own index.
func CheckLexerError(err error, sf *source.File) error {
	var le *lexer.LexerError
	if !errors.As(err, &le) {
		return fmt.Errorf("not a *lexer.LexerError: %w", err)
	}
	if le.Doc != sf.Text() {
		return errors.New("error document differs from the lexed file")
	}
	if le.Pos < 0 || le.Pos > len(le.Doc) {
		return fmt.Errorf("position %d outside document of %d bytes", le.Pos, len(le.Doc))
	}
	off, convErr := safecast.Conv[uint32](le.Pos)
	if convErr != nil {
		return fmt.Errorf("position overflow: %w", convErr)
	}
	pos := sf.Position(off)
	if int(pos.Line) != le.Line || int(pos.Col) != le.Col {
		return fmt.Errorf("error at %d:%d, file index says %d:%d", le.Line, le.Col, pos.Line, pos.Col)
	}
	return nil
}
