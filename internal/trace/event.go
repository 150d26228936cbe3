package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDetect Scope = iota + 1 // dialect detection over several grammars
	ScopePass                    // one document lexed under one grammar
	ScopeToken                   // individual tokens, push-backs, errors
)

func (s Scope) String() string {
	switch s {
	case ScopeDetect:
		return "detect"
	case ScopePass:
		return "pass"
	case ScopeToken:
		return "token"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64        // 0 for a root span
	Duration time.Duration // set on span end events
	Name     string        // e.g. "lex", "detect", "pushback"
	Detail   string
	Extra    map[string]string
}
