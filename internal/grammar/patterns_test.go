package grammar_test

import (
	"testing"

	"pvl/internal/grammar"
)

func TestNonDecimalPatterns(t *testing.T) {
	type row struct {
		in             string
		pvl, odl, omni bool
	}
	rows := []row{
		{"2#0101#", true, true, true},
		{"+2#0101#", true, false, true},
		{"2#+0101#", false, true, true},
		{"-16#-FF#", false, false, true},
		{"8#777#", true, true, true},
		{"16#DEADbeef#", true, true, true},
		{"7#66#", false, true, true},
		{"16#FF", false, false, false},
		{"2##", false, false, false},
		{"17#1#", false, false, false},
	}
	pvl := grammar.New(grammar.PVL)
	odl := grammar.New(grammar.ODL)
	omni := grammar.New(grammar.Omni)
	for _, r := range rows {
		if got := pvl.Numeric.NonDecimal.Match(r.in); got != r.pvl {
			t.Errorf("PVL NonDecimal(%q) = %v, want %v", r.in, got, r.pvl)
		}
		if got := odl.Numeric.NonDecimal.Match(r.in); got != r.odl {
			t.Errorf("ODL NonDecimal(%q) = %v, want %v", r.in, got, r.odl)
		}
		if got := omni.Numeric.NonDecimal.Match(r.in); got != r.omni {
			t.Errorf("Omni NonDecimal(%q) = %v, want %v", r.in, got, r.omni)
		}
	}
}

func TestRadixSpecificPatterns(t *testing.T) {
	g := grammar.New(grammar.PVL)
	if !g.Numeric.Binary.Match("-2#1001#") || g.Numeric.Binary.Match("2#102#") {
		t.Error("binary pattern mismatch")
	}
	if !g.Numeric.Octal.Match("8#17#") || g.Numeric.Octal.Match("8#18#") {
		t.Error("octal pattern mismatch")
	}
	if !g.Numeric.Hex.Match("16#1f#") || g.Numeric.Hex.Match("16#1g#") {
		t.Error("hex pattern mismatch")
	}
	if g.Numeric.Hex.Match("16#1|f#") {
		t.Error("'|' is not a hex digit")
	}
}

func TestNonDecimalGroups(t *testing.T) {
	g := grammar.New(grammar.Omni)
	groups, ok := g.Numeric.NonDecimal.Groups("-16#+1F#")
	if !ok {
		t.Fatal("expected a match")
	}
	if groups["sign"] != "-" || groups["second_sign"] != "+" || groups["radix"] != "16" || groups["non_decimal"] != "1F" {
		t.Errorf("groups = %v", groups)
	}
	if _, ok := g.Numeric.NonDecimal.Groups("16#"); ok {
		t.Error("incomplete literal must not match")
	}
}

func TestNonDecimalPrefixes(t *testing.T) {
	pvl := grammar.New(grammar.PVL)
	odl := grammar.New(grammar.ODL)
	if !pvl.Numeric.NonDecimalPre.Match("+16#") || pvl.Numeric.NonDecimalPre.Match("16#-") {
		t.Error("PVL prefix mismatch")
	}
	if !odl.Numeric.NonDecimalPre.Match("16#-") || odl.Numeric.NonDecimalPre.Match("+16#") {
		t.Error("ODL prefix mismatch")
	}
	if !pvl.Numeric.NonDecimalOpen.Match("16#FF") || pvl.Numeric.NonDecimalOpen.Match("16#FF#") {
		t.Error("open literal mismatch")
	}
}

func TestLeapSecond(t *testing.T) {
	pvl := grammar.New(grammar.PVL)
	odl := grammar.New(grammar.ODL)
	for _, s := range []string{"23:59:60", "23:59:60Z", "23:59:60.123", "2016-12-31T23:59:60", "2016-366T23:59:60.5Z"} {
		if !pvl.MatchLeapSecond(s) {
			t.Errorf("PVL must accept %q", s)
		}
		if odl.MatchLeapSecond(s) {
			t.Errorf("ODL must reject %q", s)
		}
	}
	for _, s := range []string{"23:59:59", "24:00:60", "2016-13-01T00:00:60", "2016-367T00:00:60"} {
		if pvl.MatchLeapSecond(s) {
			t.Errorf("PVL must reject %q", s)
		}
	}
}

func TestDateTimeLayouts(t *testing.T) {
	g := grammar.New(grammar.PVL)
	if len(g.DateLayouts) != 4 || len(g.TimeLayouts) != 6 || len(g.DateTimeLayouts) != 12 {
		t.Fatalf("unexpected layout counts: %d %d %d", len(g.DateLayouts), len(g.TimeLayouts), len(g.DateTimeLayouts))
	}
	if g.DateTimeLayouts[0] != "2006-01-02T15:04" || g.DateTimeLayouts[1] != "2006-01-02T15:04Z" {
		t.Errorf("DateTimeLayouts = %v", g.DateTimeLayouts[:2])
	}
}

func TestIsDecimal(t *testing.T) {
	good := []string{"0", "+79", "-1", "1.", ".5", "3.14", "-1.5e10", "2E-3", "+7"}
	bad := []string{"", "+", "-", ".", "e5", "1e", "1.2.3", "0x10", "Number:", "+a"}
	for _, s := range good {
		if !grammar.IsDecimal(s) {
			t.Errorf("IsDecimal(%q) = false", s)
		}
	}
	for _, s := range bad {
		if grammar.IsDecimal(s) {
			t.Errorf("IsDecimal(%q) = true", s)
		}
	}
}

func TestCompilePatternRejectsBadTemplate(t *testing.T) {
	if _, err := grammar.CompilePattern(`(?P<radix>2`); err == nil {
		t.Fatal("expected error for malformed template")
	}
	var p *grammar.Pattern
	if p.Match("anything") {
		t.Error("nil pattern must never match")
	}
}
