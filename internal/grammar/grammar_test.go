package grammar_test

import (
	"errors"
	"testing"

	"pvl/internal/grammar"
)

func TestNewBuildsIndependentValues(t *testing.T) {
	a := grammar.New(grammar.PVL)
	b := grammar.New(grammar.PVL)
	if a == b {
		t.Fatal("New must not return a shared singleton")
	}
	a.Comments = append(a.Comments, grammar.HashComment)
	a.GroupKeywords["BLOCK"] = "END_BLOCK"
	if len(b.Comments) != 1 {
		t.Fatalf("mutating one grammar leaked into another: %v", b.Comments)
	}
	if _, ok := b.GroupKeywords["BLOCK"]; ok {
		t.Fatal("keyword tables must not be shared")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := grammar.New(grammar.Omni)
	c := g.Clone()
	c.Comments[1] = grammar.CommentPair{Open: "!", Close: "\n"}
	c.ReservedKeywords["EXTRA"] = struct{}{}
	if g.Comments[1] != grammar.HashComment {
		t.Fatalf("clone shares comment slice: %v", g.Comments)
	}
	if _, ok := g.ReservedKeywords["EXTRA"]; ok {
		t.Fatal("clone shares reserved keywords")
	}
}

func TestDialectDifferences(t *testing.T) {
	pvl := grammar.New(grammar.PVL)
	odl := grammar.New(grammar.ODL)
	omni := grammar.New(grammar.Omni)

	if len(pvl.Comments) != 1 || pvl.Comments[0] != grammar.BlockComment {
		t.Errorf("PVL comments = %v", pvl.Comments)
	}
	if len(omni.Comments) != 2 || omni.Comments[1] != grammar.HashComment {
		t.Errorf("Omni comments = %v", omni.Comments)
	}
	if odl.GroupPrefKeywords != [2]string{"GROUP", "END_GROUP"} {
		t.Errorf("ODL group keywords = %v", odl.GroupPrefKeywords)
	}
	if pvl.ObjectPrefKeywords != [2]string{"BEGIN_OBJECT", "END_OBJECT"} {
		t.Errorf("PVL object keywords = %v", pvl.ObjectPrefKeywords)
	}
	if !pvl.LeapSecondsAllowed() || odl.LeapSecondsAllowed() || !omni.LeapSecondsAllowed() {
		t.Error("only ODL forbids leap seconds")
	}
	for _, d := range grammar.Dialects() {
		g := grammar.New(d)
		if g.Dialect != d {
			t.Errorf("New(%v).Dialect = %v", d, g.Dialect)
		}
		if err := g.Validate(); err != nil {
			t.Errorf("built-in %v grammar is invalid: %v", d, err)
		}
	}
}

func TestReservedKeywordsCoverAggregations(t *testing.T) {
	g := grammar.New(grammar.PVL)
	for open, closing := range g.AggregationKeywords {
		if _, ok := g.ReservedKeywords[closing]; !ok {
			t.Errorf("%s closes with %s which is not reserved", open, closing)
		}
	}
	if _, ok := g.ReservedKeywords["END"]; !ok {
		t.Error("END must be reserved")
	}
	if len(g.AggregationKeywords) != 4 {
		t.Errorf("AggregationKeywords = %v", g.AggregationKeywords)
	}
}

func TestCharAllowed(t *testing.T) {
	pvl := grammar.New(grammar.PVL)
	odl := grammar.New(grammar.ODL)

	cases := []struct {
		ch       string
		pvl, odl bool
	}{
		{"a", true, true},
		{"\t", true, true},
		{"\n", true, true},
		{"\r", true, true},
		{"\f", true, true},
		{"\v", false, true},
		{"\x00", false, true},
		{"\x08", false, true},
		{"\x1f", false, true},
		{"\x7f", false, true},
		{"\u0085", false, false},
		{"\u009f", false, false},
		{"\u00a0", true, false},
		{"é", true, false},
		{"ÿ", true, false},
		{"€", false, false},
	}
	for _, c := range cases {
		got, err := pvl.CharAllowed(c.ch)
		if err != nil || got != c.pvl {
			t.Errorf("PVL CharAllowed(%q) = %v, %v; want %v", c.ch, got, err, c.pvl)
		}
		got, err = odl.CharAllowed(c.ch)
		if err != nil || got != c.odl {
			t.Errorf("ODL CharAllowed(%q) = %v, %v; want %v", c.ch, got, err, c.odl)
		}
	}
}

func TestCharAllowedIsTotalOverLatin1(t *testing.T) {
	for _, d := range grammar.Dialects() {
		g := grammar.New(d)
		for r := rune(0); r < 256; r++ {
			first, err := g.CharAllowed(string(r))
			if err != nil {
				t.Fatalf("%v: CharAllowed(%U) failed: %v", d, r, err)
			}
			second, _ := g.CharAllowed(string(r))
			if first != second || first != g.AllowsRune(r) {
				t.Fatalf("%v: CharAllowed(%U) is not stable", d, r)
			}
		}
	}
}

func TestCharAllowedRejectsMultiRune(t *testing.T) {
	g := grammar.New(grammar.PVL)
	for _, s := range []string{"", "ab", "é!"} {
		if _, err := g.CharAllowed(s); !errors.Is(err, grammar.ErrMultiRune) {
			t.Errorf("CharAllowed(%q) err = %v, want ErrMultiRune", s, err)
		}
	}
}

func TestParseDialect(t *testing.T) {
	cases := map[string]grammar.Dialect{
		"":     grammar.PVL,
		"PVL":  grammar.PVL,
		"odl":  grammar.ODL,
		"pds3": grammar.ODL,
		"Omni": grammar.Omni,
		"isis": grammar.Omni,
	}
	for in, want := range cases {
		got, err := grammar.ParseDialect(in)
		if err != nil || got != want {
			t.Errorf("ParseDialect(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := grammar.ParseDialect("yaml"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}
