package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// noChar stands for the missing neighbour at either edge of the document.
const noChar rune = -1

// Cursor walks a document one code point at a time and exposes the code
// points on either side of the current one.
type Cursor struct {
	Doc string
	Off int
}

// NewCursor creates a cursor at the start of doc.
func NewCursor(doc string) Cursor {
	return Cursor{Doc: doc}
}

// EOF reports whether every code point has been consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Doc)
}

// Peek returns the current code point and its width in bytes.
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return noChar, 0
	}
	if b := c.Doc[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Doc[c.Off:])
}

// Prev returns the code point before the current one.
func (c *Cursor) Prev() rune {
	if c.Off <= 0 {
		return noChar
	}
	r, _ := utf8.DecodeLastRuneInString(c.Doc[:c.Off])
	return r
}

// After returns the code point n positions past the current one
// (After(1) is the next character).
func (c *Cursor) After(n int) rune {
	off := c.Off
	for i := 0; i <= n; i++ {
		if off >= len(c.Doc) {
			return noChar
		}
		r, size := utf8.DecodeRuneInString(c.Doc[off:])
		if i == n {
			return r
		}
		off += size
	}
	return noChar
}

// Bump advances past the current code point.
func (c *Cursor) Bump() {
	_, size := c.Peek()
	c.Off += size
}

// Rest returns the unconsumed part of the document.
func (c *Cursor) Rest() string {
	return c.Doc[c.Off:]
}

// offset32 converts a document offset for use in a source.Span. Documents
// come from a source.FileSet, which already bounds their length.
func offset32(off int) uint32 {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
