package trace

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDetect, false},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopeDetect, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeToken, false},
		{LevelDebug, ScopeToken, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestErrorPointsPassErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	Point(ring, ScopeToken, "pushback", 0, "")
	Point(ring, ScopeToken, ErrorEvent, 0, "boom")

	events := ring.Snapshot()
	if len(events) != 1 || events[0].Detail != "boom" {
		t.Fatalf("events = %+v", events)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "ERROR", "phase", "Debug"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) succeeded")
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeToken, name, 0, "")
	}
	events := ring.Snapshot()
	var got []string
	for _, ev := range events {
		got = append(got, ev.Name)
	}
	if strings.Join(got, ",") != "c,d,e" {
		t.Fatalf("snapshot = %v", got)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("sequence not monotonic: %d then %d", events[i-1].Seq, events[i].Seq)
		}
	}
}

func TestSpanBeginEnd(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	sp := Begin(ring, ScopePass, "lex", 0)
	sp.WithExtra("tokens", "4")
	sp.End("done")

	// Token scope is filtered at LevelPhase.
	child := Begin(ring, ScopeToken, "tok", sp.ID())
	child.End("")

	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != KindSpanBegin || events[1].Kind != KindSpanEnd {
		t.Fatalf("kinds = %s, %s", events[0].Kind, events[1].Kind)
	}
	if events[1].Extra["tokens"] != "4" || events[1].Detail != "done" {
		t.Fatalf("end event = %+v", events[1])
	}
	if child.ID() != 0 {
		t.Fatalf("filtered span got id %d", child.ID())
	}
	if events[1].SpanID != sp.ID() || events[1].Duration < 0 {
		t.Fatalf("end event = %+v", events[1])
	}
	if got := string(FormatEvent(&events[1], FormatText)); !strings.Contains(got, "← lex (done) in ") {
		t.Fatalf("text = %q", got)
	}
}

func TestStreamTracerFormats(t *testing.T) {
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelDebug, FormatText)
	st.Emit(&Event{Kind: KindPoint, Scope: ScopeToken, Name: "pushback", Detail: "Two", Extra: map[string]string{"b": "2", "a": "1"}})
	if got := text.String(); !strings.Contains(got, "[token] • pushback (Two) {a=1, b=2}") {
		t.Fatalf("text output = %q", got)
	}

	var js bytes.Buffer
	st = NewStreamTracer(&js, LevelDebug, FormatNDJSON)
	st.Emit(&Event{Kind: KindSpanBegin, Scope: ScopePass, SpanID: 7, Name: "lex"})
	var decoded map[string]any
	if err := stdjson.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("ndjson: %v", err)
	}
	if decoded["name"] != "lex" || decoded["kind"] != "begin" || decoded["scope"] != "pass" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestMultiTracerCopiesEvents(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(a, b)
	Point(m, ScopeToken, "x", 0, "")
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatal("event not fanned out")
	}
	if a.Snapshot()[0].Seq == b.Snapshot()[0].Seq {
		t.Fatal("tracers shared one event value")
	}
}

func TestNewConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff: %v %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("ModeBoth returned %T", tr)
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Fatal("missing mode accepted")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context should yield Nop")
	}
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	if ParentFrom(ctx) != 0 {
		t.Fatal("root context has a parent")
	}

	outer, parent := Start(ctx, ScopeDetect, "detect")
	if ParentFrom(outer) != parent.ID() || parent.ID() == 0 {
		t.Fatalf("parent = %d, span = %d", ParentFrom(outer), parent.ID())
	}
	_, child := Start(outer, ScopePass, "lex")
	child.End("")
	parent.End("")

	begins := ring.Find(func(ev *Event) bool { return ev.Kind == KindSpanBegin })
	if len(begins) != 2 {
		t.Fatalf("got %d begin events, want 2", len(begins))
	}
	if begins[1].ParentID != parent.ID() {
		t.Fatalf("child parent = %d, want %d", begins[1].ParentID, parent.ID())
	}
}

func TestStartFilteredKeepsParent(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	ctx := WithParent(WithTracer(context.Background(), ring), 5)
	next, sp := Start(ctx, ScopeToken, "tok")
	if sp.ID() != 0 || ParentFrom(next) != 5 {
		t.Fatalf("filtered span id %d, parent %d", sp.ID(), ParentFrom(next))
	}
}

func TestRingFindAndLen(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	for _, name := range []string{"a", "b", "a", "c", "a", "d"} {
		Point(ring, ScopeToken, name, 0, "")
	}
	if ring.Len() != 4 {
		t.Fatalf("Len = %d, want 4", ring.Len())
	}
	got := ring.Find(func(ev *Event) bool { return ev.Name == "a" })
	if len(got) != 2 {
		t.Fatalf("Find(a) = %d events, want 2 after wrap", len(got))
	}
}

type failWriter struct{ calls int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestStreamTracerKeepsFirstWriteError(t *testing.T) {
	w := &failWriter{}
	st := NewStreamTracer(w, LevelDebug, FormatText)
	Point(st, ScopeToken, "a", 0, "")
	Point(st, ScopeToken, "b", 0, "")
	if err := st.Close(); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Close() = %v", err)
	}
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(`
level = "debug"
format = "ndjson"
ring_size = 32
`)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != LevelDebug || cfg.Format != FormatNDJSON || cfg.RingSize != 32 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Mode != ModeRing {
		t.Fatalf("default mode = %s", cfg.Mode)
	}

	tests := []struct {
		name string
		text string
	}{
		{"unknown key", `depth = 3`},
		{"bad level", `level = "loud"`},
		{"bad mode", `mode = "disk"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeConfig(tt.text); err == nil {
				t.Fatalf("DecodeConfig(%q) succeeded", tt.text)
			}
		})
	}
}
