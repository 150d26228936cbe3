package diag

import (
	"sync"

	"pvl/internal/source"
)

type dedupKey struct {
	code    Code
	sev     Severity
	primary source.Span
	msg     string
}

// DedupReporter forwards a diagnostic to next only the first time its code,
// severity, primary span and message are seen. It is safe for concurrent
// use when next is.
type DedupReporter struct {
	next       Reporter
	mu         sync.Mutex
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, primary: primary, msg: msg}
	r.mu.Lock()
	_, dup := r.seen[key]
	if dup {
		r.suppressed++
	} else {
		r.seen[key] = struct{}{}
	}
	r.mu.Unlock()
	if !dup && r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many repeats were dropped.
func (r *DedupReporter) Suppressed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}
