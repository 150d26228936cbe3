package trace

import (
	"io"
	"sync"
)

// StreamTracer writes every accepted event to an io.Writer as it arrives.
// A failed write never reaches the traced operation; the first one is kept
// and returned by Flush and Close.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	err    error
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.Allows(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	ev.Seq = NextSeq()
	if _, err := t.w.Write(FormatEvent(ev, t.format)); err != nil {
		t.err = err
	}
}

// Flush reports the first write error, then flushes the writer when it
// has a Flush method.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
