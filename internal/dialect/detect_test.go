package dialect_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pvl/internal/diag"
	"pvl/internal/dialect"
	"pvl/internal/grammar"
	"pvl/internal/lexer"
	"pvl/internal/source"
	"pvl/internal/trace"
)

func addFile(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("label.lbl", []byte(text)))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		best     grammar.Dialect
		rejected []grammar.Dialect
		codes    []diag.Code
	}{
		{
			name:  "pvl aggregation and leap second",
			text:  "BEGIN_GROUP = G\n  T = 2016-12-31T23:59:60Z\nEND_GROUP = G\nEND\n",
			best:  grammar.PVL,
			codes: []diag.Code{diag.DetBeginAggregation, diag.DetLeapSecond},
		},
		{
			name:  "odl radix and inner sign",
			text:  "OBJECT = IMAGE\n  MASK = 5#-1234#\nEND_OBJECT = IMAGE\nEND\n",
			best:  grammar.ODL,
			codes: []diag.Code{diag.DetWideRadix, diag.DetInnerSign},
		},
		{
			name:  "omni hash comment",
			text:  "# ISIS label\nObject = IsisCube\nEnd_Object\nEnd\n",
			best:  grammar.Omni,
			codes: []diag.Code{diag.DetHashComment},
		},
		{
			name:     "non-ascii word rejects odl",
			text:     "NAME = Café\nEND\n",
			best:     grammar.PVL,
			rejected: []grammar.Dialect{grammar.ODL},
			codes:    []diag.Code{diag.DetNonASCII},
		},
		{
			name:  "no evidence falls back to first dialect",
			text:  "A = 1\nEND\n",
			best:  grammar.PVL,
			codes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := dialect.Detect(context.Background(), addFile(t, tt.text))
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if !rep.Found || rep.Best != tt.best {
				t.Fatalf("best = %v (found %v), want %v; %s", rep.Best, rep.Found, tt.best, rep.Summary())
			}
			if len(rep.Results) != 3 {
				t.Fatalf("results = %d", len(rep.Results))
			}
			for _, res := range rep.Results {
				wantReject := false
				for _, d := range tt.rejected {
					wantReject = wantReject || d == res.Dialect
				}
				if res.OK() == wantReject {
					t.Errorf("%s: ok = %v, err = %v", res.Dialect, res.OK(), res.Err)
				}
			}
			var got []diag.Code
			for _, h := range rep.Evidence.Hints() {
				got = append(got, h.Code)
			}
			for _, c := range tt.codes {
				found := false
				for _, g := range got {
					found = found || g == c
				}
				if !found {
					t.Errorf("missing hint %s in %v", c.ID(), got)
				}
			}
			if tt.codes == nil && len(got) != 0 {
				t.Errorf("unexpected hints %v", got)
			}
		})
	}
}

func TestDetectScores(t *testing.T) {
	rep, err := dialect.Detect(context.Background(),
		addFile(t, "BEGIN_GROUP = G\n  T = 2016-12-31T23:59:60Z\nEND_GROUP = G\nEND\n"))
	if err != nil {
		t.Fatal(err)
	}
	c := rep.Classification
	if c.Score != 7 || c.RunnerUp != grammar.Omni || c.RunnerUpScore != 3 || c.TotalScore != 10 {
		t.Errorf("classification = %+v", c)
	}
	if c.Confidence < 0.69 || c.Confidence > 0.71 {
		t.Errorf("confidence = %v", c.Confidence)
	}
}

func TestDetectRejectsCharset(t *testing.T) {
	rep, err := dialect.Detect(context.Background(), addFile(t, "NAME = Café\nEND\n"), grammar.ODL, grammar.PVL)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Results[0].Dialect != grammar.ODL || !errors.Is(rep.Results[0].Err, lexer.ErrCharNotAllowed) {
		t.Fatalf("odl result = %+v", rep.Results[0])
	}
	var le *lexer.LexerError
	if !errors.As(rep.Results[0].Err, &le) || le.Pos != 7 {
		t.Errorf("error position: %v", rep.Results[0].Err)
	}
	if got := rep.Accepted(); len(got) != 1 || got[0] != grammar.PVL {
		t.Errorf("accepted = %v", got)
	}
}

func TestDetectNothingLexes(t *testing.T) {
	rep, err := dialect.Detect(context.Background(), addFile(t, "A = \"open\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Found {
		t.Fatalf("found %v for an unlexable document", rep.Best)
	}
	if got, want := rep.Summary(), "no dialect lexes this document; rejected pvl, odl, omni"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

func TestDetectSummary(t *testing.T) {
	rep, err := dialect.Detect(context.Background(), addFile(t, "MASK = 5#-1234#\nEND\n"))
	if err != nil {
		t.Fatal(err)
	}
	s := rep.Summary()
	if !strings.HasPrefix(s, "odl (score 6, confidence ") || !strings.Contains(s, `radix 5 in "5#-1234#"`) {
		t.Errorf("summary = %q", s)
	}

	rep, err = dialect.Detect(context.Background(), addFile(t, "A = 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := rep.Summary(); got != "pvl (no evidence)" {
		t.Errorf("summary = %q", got)
	}
}

func TestDetectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dialect.Detect(ctx, addFile(t, strings.Repeat("A = 1\n", 100)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDetectNilFile(t *testing.T) {
	if _, err := dialect.Detect(context.Background(), nil); !errors.Is(err, lexer.ErrNilFile) {
		t.Fatalf("err = %v", err)
	}
}

func TestDetectorReporterAndLimit(t *testing.T) {
	bag := diag.NewBag(100)
	dt := dialect.Detector{Reporter: diag.BagReporter{Bag: bag}, Limit: 1}
	rep, err := dt.Detect(context.Background(), addFile(t, "# comment\nNAME = Café\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Best != grammar.Omni {
		t.Errorf("best = %v", rep.Best)
	}
	want := map[diag.Code]bool{diag.DetHashComment: false, diag.DetNonASCII: false, diag.DetLexFailed: false}
	for _, d := range bag.Items() {
		if d.Severity != diag.SevInfo {
			t.Errorf("%s reported as %s", d.Code.ID(), d.Severity)
		}
		if _, ok := want[d.Code]; ok {
			want[d.Code] = true
		}
	}
	for c, seen := range want {
		if !seen {
			t.Errorf("%s not reported", c.ID())
		}
	}
}

func TestDetectTracing(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := dialect.Detect(ctx, addFile(t, "A = 1\n"), grammar.PVL, grammar.ODL); err != nil {
		t.Fatal(err)
	}

	var detectID uint64
	lexSpans := 0
	for _, ev := range ring.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			continue
		}
		switch ev.Scope {
		case trace.ScopeDetect:
			detectID = ev.SpanID
			if ev.Extra["best"] != "pvl" || ev.Extra["dialects"] != "2" {
				t.Errorf("detect extras = %v", ev.Extra)
			}
		case trace.ScopePass:
			lexSpans++
		}
	}
	if detectID == 0 {
		t.Fatal("no detect span")
	}
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopePass && ev.ParentID != detectID {
			t.Errorf("lex span parent = %d, want %d", ev.ParentID, detectID)
		}
	}
	// Two dialects plus the evidence pass.
	if lexSpans != 3 {
		t.Errorf("lex spans = %d, want 3", lexSpans)
	}
}

func TestDetectTestdata(t *testing.T) {
	root := filepath.Join("..", "..", "testdata")
	for _, want := range grammar.Dialects() {
		paths, err := filepath.Glob(filepath.Join(root, want.String(), "*.lbl"))
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) == 0 {
			t.Fatalf("no %s samples in %s", want, root)
		}
		for _, p := range paths {
			t.Run(filepath.Base(p), func(t *testing.T) {
				raw, err := os.ReadFile(p)
				if err != nil {
					t.Fatal(err)
				}
				fs := source.NewFileSet()
				rep, err := dialect.Detect(context.Background(), fs.Get(fs.AddEncoded(p, raw)))
				if err != nil {
					t.Fatal(err)
				}
				if !rep.Found || rep.Best != want {
					t.Errorf("detected %s, want %s: %s", rep.Best, want, rep.Summary())
				}
			})
		}
	}
}
