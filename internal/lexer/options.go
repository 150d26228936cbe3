package lexer

import (
	"pvl/internal/diag"
	"pvl/internal/trace"
)

type Options struct {
	// Reporter receives lexical and configuration errors as diagnostics.
	// May be nil.
	Reporter diag.Reporter
	// Tracer receives a span per document and token-level points. Nil
	// means no tracing.
	Tracer trace.Tracer
	// TraceParent is the span ID the document span is nested under.
	TraceParent uint64
	// SkipCharsetCheck accepts characters the grammar's character set rejects.
	SkipCharsetCheck bool
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}
