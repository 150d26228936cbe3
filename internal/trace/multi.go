package trace

import "errors"

// MultiTracer fans events out to several tracers, each filtering by its
// own level.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer combines the enabled tracers among ts. Its level is the
// most verbose of theirs.
func NewMultiTracer(ts ...Tracer) *MultiTracer {
	m := &MultiTracer{}
	for _, t := range ts {
		if t == nil || !t.Enabled() {
			continue
		}
		m.tracers = append(m.tracers, t)
		m.level = max(m.level, t.Level())
	}
	return m
}

// Emit hands every accepting tracer its own copy, since tracers stamp Seq
// on what they receive.
func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		if !t.Level().Allows(ev) {
			continue
		}
		cp := *ev
		t.Emit(&cp)
	}
}

// Flush flushes every tracer and joins their errors.
func (m *MultiTracer) Flush() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

// Close closes every tracer and joins their errors.
func (m *MultiTracer) Close() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }

func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }
