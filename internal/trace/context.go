package trace

import "context"

type (
	tracerKey struct{}
	parentKey struct{}
)

// WithTracer attaches t to ctx. A nil tracer is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithParent records id as the span that work started from ctx nests under.
func WithParent(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, parentKey{}, id)
}

// ParentFrom returns the span recorded by WithParent, 0 for a root.
func ParentFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}

// Start begins a span with the tracer and parent carried by ctx. The
// returned context makes the new span the parent of nested work.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, ParentFrom(ctx))
	if sp.ID() == 0 {
		return ctx, sp
	}
	return WithParent(ctx, sp.ID()), sp
}
