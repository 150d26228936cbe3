package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff   Level = iota // no tracing
	LevelError              // token-scope error points only
	LevelPhase              // detection and per-document spans
	LevelDebug              // everything
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|debug)", s)
	}
}

// ShouldEmit reports whether an event of the given scope passes this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDebug:
		return true
	}
	return false
}

// ErrorEvent is the name of the point event emitted when an operation
// fails. It passes LevelError regardless of scope.
const ErrorEvent = "error"

// Allows reports whether ev passes this level.
func (l Level) Allows(ev *Event) bool {
	if l >= LevelError && ev.Kind == KindPoint && ev.Name == ErrorEvent {
		return true
	}
	return l.ShouldEmit(ev.Scope)
}

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
