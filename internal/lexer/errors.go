package lexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"pvl/internal/diag"
)

var (
	// ErrPushBackFull is returned by PushBack when a pushed-back token has
	// not been pulled yet.
	ErrPushBackFull = errors.New("lexer: push-back slot is occupied")
	// ErrNilFile is returned by New for a nil document.
	ErrNilFile = errors.New("lexer: nil file")

	// ErrCharNotAllowed marks a character outside the grammar's character set.
	ErrCharNotAllowed = errors.New("character not allowed by the grammar")
	// ErrUnterminatedQuote marks a quoted string still open at the end of the document.
	ErrUnterminatedQuote = errors.New("unterminated quoted string")
)

// LexerError is a lexical error positioned in its document. Line and Col
// are derived from Doc and Pos alone, so the error can be rebuilt (and
// serialised) from (Msg, Doc, Pos).
type LexerError struct {
	Msg  string
	Doc  string
	Pos  int // byte offset into Doc
	Line int // 1-based
	Col  int // 1-based, in bytes

	// Err is the underlying cause. It does not survive serialisation.
	Err error
}

// NewLexerError builds a LexerError, computing the line as the number of
// newlines before pos plus one and the column as pos minus the offset of
// the preceding newline.
func NewLexerError(msg, doc string, pos int) *LexerError {
	pos = max(0, min(pos, len(doc)))
	before := doc[:pos]
	return &LexerError{
		Msg:  msg,
		Doc:  doc,
		Pos:  pos,
		Line: strings.Count(before, "\n") + 1,
		Col:  pos - strings.LastIndexByte(before, '\n'),
	}
}

func wrapLexerError(cause error, detail, doc string, pos int) *LexerError {
	msg := cause.Error()
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", cause, detail)
	}
	e := NewLexerError(msg, doc, pos)
	e.Err = cause
	return e
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s: line %d column %d (char %d)", e.Msg, e.Line, e.Col, e.Pos)
}

func (e *LexerError) Unwrap() error { return e.Err }

// Code maps the error's cause onto a diagnostic code.
func (e *LexerError) Code() diag.Code {
	switch {
	case errors.Is(e.Err, ErrCharNotAllowed):
		return diag.LexCharNotAllowed
	case errors.Is(e.Err, ErrUnterminatedQuote):
		return diag.LexUnterminatedQuote
	}
	return diag.LexBadToken
}

var (
	_ msgpack.CustomEncoder = (*LexerError)(nil)
	_ msgpack.CustomDecoder = (*LexerError)(nil)
)

// EncodeMsgpack writes the error as the array [msg, doc, pos].
func (e *LexerError) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(3); err != nil {
		return err
	}
	if err := enc.EncodeString(e.Msg); err != nil {
		return err
	}
	if err := enc.EncodeString(e.Doc); err != nil {
		return err
	}
	return enc.EncodeInt(int64(e.Pos))
}

// DecodeMsgpack reads [msg, doc, pos] and recomputes the position fields.
func (e *LexerError) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 3 {
		return fmt.Errorf("lexer error: expected 3 fields, got %d", n)
	}
	msg, err := dec.DecodeString()
	if err != nil {
		return err
	}
	doc, err := dec.DecodeString()
	if err != nil {
		return err
	}
	pos, err := dec.DecodeInt()
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(doc) {
		return fmt.Errorf("lexer error: position %d outside document of %d bytes", pos, len(doc))
	}
	*e = *NewLexerError(msg, doc, pos)
	return nil
}
