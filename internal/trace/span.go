package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next event sequence number. Tracers stamp it on
// every stored event so output from concurrent lexers can be ordered.
func NextSeq() uint64 { return seqCounter.Add(1) }

func nextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin event. A span whose scope the tracer filters out
// has ID 0 and all its methods are no-ops.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

var noSpan = &Span{}

// Begin emits a begin event under parent (0 for a root) and returns the
// open span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return noSpan
	}
	sp := &Span{
		tracer: t,
		begin: Event{
			Time:     time.Now(),
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   nextSpanID(),
			ParentID: parent,
			Name:     name,
		},
	}
	ev := sp.begin
	t.Emit(&ev)
	return sp
}

// ID returns the span ID, 0 when the span is not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s.ID() == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// End emits the end event carrying detail, the extras and the elapsed
// time, which it also returns.
func (s *Span) End(detail string) time.Duration {
	if s.ID() == 0 {
		return 0
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Duration = ev.Time.Sub(s.begin.Time)
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return ev.Duration
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if t == nil || !t.Enabled() {
		return
	}
	ev := Event{
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	}
	if !t.Level().Allows(&ev) {
		return
	}
	ev.Time = time.Now()
	t.Emit(&ev)
}
