package logs

import "context"

type Span string

type spanKey struct{}

var SpanKey spanKey

// Session names the program run a context belongs to.
type Session string

type sessionKey struct{}

var SessionKey sessionKey

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
