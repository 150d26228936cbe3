// Package trace provides structured event tracing for grammar loading,
// lexing and dialect detection.
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: immediate write to an io.Writer (text or NDJSON)
//   - RingTracer: in-memory circular buffer, dumped on demand
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDetect and ScopePass events (one span per detection
// run and per lexed document). LevelDebug adds ScopeToken points such as
// push-backs and lexical errors.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeDetect, "detect")
//	defer span.End("")
//
// Spans started from the returned context nest under span. Code that takes
// a Tracer directly uses Begin with an explicit parent ID.
//
// # Configuration
//
// Config can be decoded from TOML with DecodeConfig.
package trace
