package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan starts a span named what under the span of ctx, if any.
type NewSpan func(ctx context.Context, what string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, what string) (context.Context, Span) {
		var args []any
		args = append(args, "what", what)
		if parent, ok := ctx.Value(SpanKey).(Span); ok {
			args = append(args, "parent", parent)
		}
		span := Span(rand.Text()[:8])
		ctx = context.WithValue(ctx, SpanKey, span)
		logger.DebugContext(ctx, "span", args...)
		return ctx, span
	}
}
