package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/sandbox"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
)

// Tap opens an interactive prompt on stdin over globals. Values may be
// starlark values, such as the globals of a session, or plain Go values.
type Tap func(ctx context.Context, what string, globals map[string]any) error

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) error {
		mappings := make(starlark.StringDict)
		for name, value := range globals {
			v, err := sandbox.ToValue(value)
			if err != nil {
				return logs.WrapSpan(ctx, err)
			}
			mappings[name] = v
		}

		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(sandbox.FileOptions, thread, mappings)
		return nil
	}
}

// SessionGlobals collects the globals of a session for Tap.
func SessionGlobals(globals starlark.StringDict, extra map[string]any) map[string]any {
	ret := make(map[string]any, len(globals)+len(extra))
	for name, value := range globals {
		ret[name] = value
	}
	maps.Copy(ret, extra)
	return ret
}
