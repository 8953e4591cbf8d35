package logs

import (
	"context"
	"errors"
	"fmt"
)

// WrapSpan joins the span and session of ctx into err.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if v := ctx.Value(SpanKey); v != nil {
		err = errors.Join(err, fmt.Errorf("span: %s", v.(Span)))
	}
	if v := ctx.Value(SessionKey); v != nil {
		err = errors.Join(err, fmt.Errorf("session: %s", v.(Session)))
	}
	return err
}
