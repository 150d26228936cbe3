package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"pvl/internal/lexer"
	"pvl/internal/source"
)

func TestLexerErrorPosition(t *testing.T) {
	tests := []struct {
		doc       string
		pos       int
		line, col int
	}{
		{"abc", 0, 1, 1},
		{"abc", 2, 1, 3},
		{"a\nbc\nd", 4, 2, 3},
		{"a\nbc\nd", 5, 3, 1},
		{"\n\n\n", 3, 4, 1},
	}
	for _, tt := range tests {
		e := lexer.NewLexerError("boom", tt.doc, tt.pos)
		if e.Line != tt.line || e.Col != tt.col {
			t.Errorf("NewLexerError(%q, %d) = line %d col %d, want %d %d", tt.doc, tt.pos, e.Line, e.Col, tt.line, tt.col)
		}
	}

	e := lexer.NewLexerError("bad thing", "a\nbc", 3)
	if got, want := e.Error(), "bad thing: line 2 column 2 (char 3)"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestLexerErrorMatchesSourcePositions(t *testing.T) {
	doc := "GROUP = a\n  X = 1\n\nEND_GROUP\nEND\n"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("doc", []byte(doc)))
	for pos := 0; pos <= len(doc); pos++ {
		e := lexer.NewLexerError("x", doc, pos)
		lc := f.Position(uint32(pos))
		if e.Line != int(lc.Line) || e.Col != int(lc.Col) {
			t.Fatalf("pos %d: error %d:%d, source %d:%d", pos, e.Line, e.Col, lc.Line, lc.Col)
		}
		if want := strings.Count(doc[:pos], "\n") + 1; e.Line != want {
			t.Fatalf("pos %d: line %d, want %d", pos, e.Line, want)
		}
	}
}

func TestLexerErrorMsgpack(t *testing.T) {
	_, err := newLexer(t, "A = 1\nB = \x02", nil, lexer.Options{}).All()
	var orig *lexer.LexerError
	if !errors.As(err, &orig) {
		t.Fatalf("error = %v", err)
	}

	data, err := msgpack.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	var fields []any
	if err := msgpack.Unmarshal(data, &fields); err != nil || len(fields) != 3 {
		t.Fatalf("encoded form = %v, %v", fields, err)
	}

	var back lexer.LexerError
	if err := msgpack.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Error() != orig.Error() || back.Line != 2 || back.Col != 5 {
		t.Fatalf("round trip = %q, want %q", back.Error(), orig.Error())
	}
	if back.Err != nil {
		t.Fatal("cause should not survive serialisation")
	}

	bad, err := msgpack.Marshal([]any{"m", "doc", 10})
	if err != nil {
		t.Fatal(err)
	}
	if err := msgpack.Unmarshal(bad, &back); err == nil {
		t.Fatal("out-of-range position accepted")
	}
}
