package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer
	ModeBoth                          // stream + ring
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

func (m *StorageMode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Config holds tracer configuration. Everything but Output can be read
// from TOML with DecodeConfig:
//
//	level = "phase"
//	mode = "ring"
//	format = "ndjson"
//	ring_size = 1024
type Config struct {
	Level    Level       `toml:"level"`
	Mode     StorageMode `toml:"mode"`
	Format   Format      `toml:"format"`
	Output   io.Writer   `toml:"-"` // stream output; stderr when nil
	RingSize int         `toml:"ring_size"`
}

// DecodeConfig parses TOML text. Keys the struct does not know are an
// error; an enabled config without a mode defaults to ModeRing.
func DecodeConfig(text string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse trace TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown trace keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Level > LevelOff && cfg.Mode == 0 {
		cfg.Mode = ModeRing
	}
	return cfg, nil
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch cfg.Mode {
	case ModeStream:
		return NewStreamTracer(out, cfg.Level, cfg.Format), nil
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		return NewMultiTracer(
			NewStreamTracer(out, cfg.Level, cfg.Format),
			NewRingTracer(cfg.RingSize, cfg.Level),
		), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}
