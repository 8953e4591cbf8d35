package debugs

import (
	"io"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/logs"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
	).Fork(
		func() logs.Writer {
			return io.Discard
		},
	).Call(func(
		tap Tap,
	) {
		if err := tap(t.Context(), "test", map[string]any{
			"foo": 42,
			"bar": starlark.String("bar"),
		}); err != nil {
			t.Fatal(err)
		}
		if err := tap(t.Context(), "test", map[string]any{
			"bad": make(chan int),
		}); err == nil {
			t.Fatal("should fail")
		}
	})
}

func TestSessionGlobals(t *testing.T) {
	globals := SessionGlobals(starlark.StringDict{
		"x": starlark.MakeInt(1),
		"y": starlark.MakeInt(2),
	}, map[string]any{
		"y":     "override",
		"store": map[string]any{"n": 1},
	})
	if len(globals) != 3 {
		t.Fatalf("got %v", globals)
	}
	if globals["y"] != "override" {
		t.Fatalf("got %v", globals["y"])
	}
	if v, ok := globals["x"].(starlark.Value); !ok || v.String() != "1" {
		t.Fatalf("got %v", globals["x"])
	}
}
