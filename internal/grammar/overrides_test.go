package grammar_test

import (
	"errors"
	"strings"
	"testing"

	"pvl/internal/grammar"
)

func TestFromTOML(t *testing.T) {
	g, err := grammar.FromTOML(`
dialect = "pvl"
comments = [["/*", "*/"], ["#", "\n"]]
none_keyword = "N/A"
charset = "ascii"
leap_seconds = false

[patterns]
nondecimal_prefix = '(?P<radix>[2-9]|1[0-6])#'
nondecimal = '(?P<radix>[2-9]|1[0-6])#(?P<non_decimal>[0-9A-Fa-f]+)#'
`)
	if err != nil {
		t.Fatalf("FromTOML: %v", err)
	}
	if len(g.Comments) != 2 || g.Comments[1] != grammar.HashComment {
		t.Errorf("Comments = %v", g.Comments)
	}
	if g.NoneKeyword != "N/A" {
		t.Errorf("NoneKeyword = %q", g.NoneKeyword)
	}
	if g.Charset != grammar.CharsetASCII {
		t.Errorf("Charset = %v", g.Charset)
	}
	if g.LeapSecondsAllowed() {
		t.Error("leap seconds should be disabled")
	}
	if !g.Numeric.NonDecimal.Match("5#44#") {
		t.Error("custom non-decimal pattern not applied")
	}
	if !g.Numeric.NonDecimalOpen.Match("5#4") {
		t.Error("open pattern must follow the custom prefix")
	}
}

func TestFromTOMLKeywordsRebuildReserved(t *testing.T) {
	g, err := grammar.FromTOML(`
[group_keywords]
BLOCK = "END_BLOCK"
`)
	if err != nil {
		t.Fatalf("FromTOML: %v", err)
	}
	if g.AggregationKeywords["BLOCK"] != "END_BLOCK" {
		t.Errorf("AggregationKeywords = %v", g.AggregationKeywords)
	}
	if _, ok := g.ReservedKeywords["END_BLOCK"]; !ok {
		t.Error("END_BLOCK must become reserved")
	}
	if _, ok := g.AggregationKeywords["GROUP"]; ok {
		t.Error("group keywords should be replaced, not merged")
	}
}

func TestFromTOMLConfigurationErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty comments", `comments = []`, grammar.ErrNoComments},
		{"multi char pair", `comments = [["//", "\n"]]`, grammar.ErrUnsupportedComment},
		{"single open multi close", `comments = [["#", "*/"]]`, grammar.ErrUnsupportedComment},
		{"three elements", `comments = [["#", "\n", "x"]]`, grammar.ErrUnsupportedComment},
		{"bad regexp", "[patterns]\nhex = '(?P<radix>16'", grammar.ErrBadPattern},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := grammar.FromTOML(c.text)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestFromTOMLRejectsUnknownKeys(t *testing.T) {
	_, err := grammar.FromTOML(`coments = [["#", "\n"]]`)
	if err == nil || !strings.Contains(err.Error(), "coments") {
		t.Fatalf("err = %v, want unknown key error", err)
	}
	if _, err := grammar.FromTOML(`dialect = "cobol"`); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
	if _, err := grammar.FromTOML(`dialect = [`); err == nil {
		t.Fatal("expected TOML syntax error")
	}
}

func TestValidateComments(t *testing.T) {
	if err := grammar.ValidateComments(nil); !errors.Is(err, grammar.ErrNoComments) {
		t.Errorf("nil table: %v", err)
	}
	ok := []grammar.CommentPair{grammar.BlockComment, grammar.HashComment}
	if err := grammar.ValidateComments(ok); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}
}

func TestValidateAggregationInvariant(t *testing.T) {
	g := grammar.New(grammar.PVL)
	delete(g.ReservedKeywords, "END_GROUP")
	if err := g.Validate(); !errors.Is(err, grammar.ErrUnclosedAggregation) {
		t.Fatalf("err = %v, want ErrUnclosedAggregation", err)
	}
}
