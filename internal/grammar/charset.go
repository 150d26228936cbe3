package grammar

import (
	"fmt"
	"unicode/utf8"
)

// Charset names the character set a dialect accepts.
type Charset uint8

const (
	// CharsetLatin1 is ISO 8859-1 minus most C0 and all C1 control codes.
	CharsetLatin1 Charset = iota
	// CharsetASCII is 7-bit ASCII.
	CharsetASCII
)

func (c Charset) String() string {
	switch c {
	case CharsetLatin1:
		return "latin1"
	case CharsetASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

func parseCharset(s string) (Charset, error) {
	switch s {
	case "latin1", "latin-1", "iso-8859-1":
		return CharsetLatin1, nil
	case "ascii":
		return CharsetASCII, nil
	default:
		return CharsetLatin1, fmt.Errorf("invalid charset: %q (expected: latin1|ascii)", s)
	}
}

// latin1Allowed is indexed by code point; excluded are 0x00-0x08, 0x0B,
// 0x0E-0x1F and 0x7F-0x9F.
var latin1Allowed = func() (t [256]bool) {
	for i := range t {
		t[i] = !(i <= 0x08 || i == 0x0B || (i >= 0x0E && i <= 0x1F) || (i >= 0x7F && i <= 0x9F))
	}
	return t
}()

// AllowsRune reports whether r is part of the character set.
func (c Charset) AllowsRune(r rune) bool {
	switch c {
	case CharsetASCII:
		return r >= 0 && r < utf8.RuneSelf
	default:
		return r >= 0 && r < 256 && latin1Allowed[r]
	}
}

// CharAllowed reports whether the single character s belongs to the
// grammar's character set. Anything other than exactly one code point
// is a programming error and yields ErrMultiRune.
func (g *Grammar) CharAllowed(s string) (bool, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return false, fmt.Errorf("%w: got %q", ErrMultiRune, s)
	}
	if r == utf8.RuneError {
		return false, nil
	}
	return g.Charset.AllowsRune(r), nil
}

// AllowsRune is the rune fast path of CharAllowed.
func (g *Grammar) AllowsRune(r rune) bool {
	return g.Charset.AllowsRune(r)
}
