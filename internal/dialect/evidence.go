package dialect

import (
	"sync"

	"pvl/internal/diag"
	"pvl/internal/grammar"
	"pvl/internal/source"
)

// Hint is a small piece of evidence about a dialect. A positive score
// supports the dialect, a negative one argues against it.
type Hint struct {
	Dialect grammar.Dialect
	Score   int
	Code    diag.Code
	Reason  string
	Span    source.Span
}

// Evidence aggregates the hints collected for one document. It is safe for
// concurrent use.
type Evidence struct {
	mu    sync.Mutex
	hints []Hint
}

// NewEvidence creates a new Evidence container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 16),
	}
}

// Add appends a hint.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.hints = append(e.hints, h)
	e.mu.Unlock()
}

// Hints returns a copy of the collected hints in insertion order.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Hint(nil), e.hints...)
}

// Len returns the number of hints.
func (e *Evidence) Len() int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.hints)
}
