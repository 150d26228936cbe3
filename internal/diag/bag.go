package diag

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"fortio.org/safecast"

	"pvl/internal/source"
)

// Bag collects diagnostics up to a limit. It is safe for concurrent use,
// so one bag can back the reporters of several lexers.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
	max   uint16
}

// clampLimit fits n into a bag limit: negative is 0, too large is MaxUint16.
func clampLimit(n int) uint16 {
	limit, err := safecast.Conv[uint16](n)
	if err == nil {
		return limit
	}
	if n < 0 {
		return 0
	}
	return math.MaxUint16
}

func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), max: limit}
}

// Add stores d and reports whether there was room for it.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.max
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

func (b *Bag) HasErrors() bool   { return b.count(SevError) > 0 }
func (b *Bag) HasWarnings() bool { return b.count(SevWarning) > 0 }
func (b *Bag) ErrorCount() int   { return b.count(SevError) }

func (b *Bag) count(atLeast Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, d := range b.items {
		if d.Severity >= atLeast {
			n++
		}
	}
	return n
}

// Items returns a copy of the stored diagnostics.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Filter returns the diagnostics of severity atLeast or worse.
func (b *Bag) Filter(atLeast Severity) []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Diagnostic
	for _, d := range b.items {
		if d.Severity >= atLeast {
			out = append(out, d)
		}
	}
	return out
}

func (b *Bag) Codes() []Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Code, len(b.items))
	for i, d := range b.items {
		out[i] = d.Code
	}
	return out
}

// Merge appends everything in other, raising the limit to fit.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	items := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	if total := len(b.items) + len(items); total > int(b.max) {
		b.max = clampLimit(total)
	}
	b.items = append(b.items, items...)
	b.items = b.items[:min(len(b.items), int(b.max))]
}

// Sort orders by file, start, end, severity (worst first) and code.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for each code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
