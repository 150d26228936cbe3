package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total int // events stored since creation
	level Level
}

// NewRingTracer creates a RingTracer holding capacity events (4096 when
// capacity is not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Allows(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	t.buf[t.total%len(t.buf)] = stored
	t.total++
}

// Len returns the number of events currently held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return min(t.total, len(t.buf))
}

// Snapshot returns the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	return t.Find(nil)
}

// Find returns the held events accepted by match, oldest first. A nil
// match accepts everything.
func (t *RingTracer) Find(match func(*Event) bool) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := min(t.total, len(t.buf))
	out := make([]Event, 0, n)
	for i := t.total - n; i < t.total; i++ {
		ev := &t.buf[i%len(t.buf)]
		if match == nil || match(ev) {
			out = append(out, *ev)
		}
	}
	return out
}

// Dump writes the held events to w in the given format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op; events live in memory.
func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
