package logs

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v := ctx.Value(SpanKey); v != nil {
		record.Add("logs.span", v.(Span))
	}
	if v := ctx.Value(SessionKey); v != nil {
		record.Add("logs.session", v.(Session))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
