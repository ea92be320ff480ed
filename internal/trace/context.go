package trace

import "context"

type ctxKey struct{}

type spanKey struct{}

// FromContext returns the Tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// CurrentSpan returns the ID of the innermost emitted span in ctx, 0 at the root.
func CurrentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64) //nolint:errcheck
	return id
}

// StartSpan begins a span under CurrentSpan(ctx) using the context's tracer
// and returns a context for its children. A span filtered out by the level
// leaves ctx unchanged, so children attach to the nearest emitted ancestor.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if s.ID() == 0 {
		return s, ctx
	}
	return s, context.WithValue(ctx, spanKey{}, s.ID())
}
