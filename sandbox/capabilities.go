package sandbox

import (
	"fmt"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Components is the component capability as seen by a program.
type Components interface {
	AddEventListener(typ, id, event string, callback func() error)
	SetScenario(id string)
	GetProperty(typ, id, name string) any
	SetProperty(typ, id, name string, value any)
	GetBlockPage(id string) int
	SetBlockPage(id string, index int)
}

type Keyboard interface {
	AddEventListener(key, event string, callback func() error)
}

type MediaTime interface {
	Get() float64
	Set(t float64)
}

// Store holds program variables.
type Store interface {
	Declare(key string, initial starlark.Value) bool
	Has(key string) bool
	Get(key string) (starlark.Value, bool)
	Set(key string, value starlark.Value) bool
}

// Watcher runs then while cond holds and otherwise when it does not.
// otherwise is nil when the program gave no else branch.
type Watcher interface {
	WatchWhen(cond func() (bool, error), then func() error, otherwise func() error) error
}

// Capabilities is the host surface installed into a program's globals.
type Capabilities struct {
	Store      Store
	Components Components
	Keyboard   Keyboard
	MediaTime  MediaTime
	Watcher    Watcher
	Trace      func(blockID string)

	// Schedule queues a call of fn on the program; host callbacks reenter the program through it.
	Schedule func(fn starlark.Callable, args ...starlark.Value) error
}

// Install binds caps into globals under the names in Globals.
func Install(interp *Interpreter, globals starlark.StringDict, caps Capabilities) error {
	if caps.Store == nil {
		return fmt.Errorf("%s: %w", GlobalStore, ErrMissingCapability)
	}
	if caps.Schedule == nil {
		return fmt.Errorf("schedule: %w", ErrMissingCapability)
	}

	callback := func(fn starlark.Callable) func() error {
		return func() error {
			return caps.Schedule(fn)
		}
	}

	globals[GlobalStore] = storeModule(caps.Store)

	if caps.Components != nil {
		globals[GlobalComponents] = componentsModule(caps.Components, callback)
	}

	if caps.Keyboard != nil {
		globals[GlobalKeyboard] = &starlarkstruct.Module{
			Name: GlobalKeyboard,
			Members: starlark.StringDict{
				"add_event_listener": starlark.NewBuiltin("add_event_listener", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
					var key, event string
					var fn starlark.Callable
					if err := starlark.UnpackArgs(b.Name(), args, kwargs, "key", &key, "event", &event, "callback", &fn); err != nil {
						return nil, err
					}
					caps.Keyboard.AddEventListener(key, event, callback(fn))
					return starlark.None, nil
				}),
			},
		}
	}

	if caps.MediaTime != nil {
		globals[GlobalMediaTime] = &starlarkstruct.Module{
			Name: GlobalMediaTime,
			Members: starlark.StringDict{
				"get": starlarkutil.MakeFunc("get", caps.MediaTime.Get),
				"set": starlark.NewBuiltin("set", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
					var t starlark.Value
					if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &t); err != nil {
						return nil, err
					}
					f, ok := starlark.AsFloat(t)
					if !ok {
						return nil, fmt.Errorf("%s: got %s, want number", b.Name(), t.Type())
					}
					caps.MediaTime.Set(f)
					return starlark.None, nil
				}),
			},
		}
	}

	if caps.Watcher != nil {
		globals[GlobalWatchWhen] = starlark.NewBuiltin(GlobalWatchWhen, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var cond, then starlark.Callable
			var otherwise starlark.Value = starlark.None
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "condition", &cond, "then", &then, "otherwise?", &otherwise); err != nil {
				return nil, err
			}
			var otherwiseFunc func() error
			if otherwise != starlark.None {
				fn, ok := otherwise.(starlark.Callable)
				if !ok {
					return nil, fmt.Errorf("%s: got %s, want callable", b.Name(), otherwise.Type())
				}
				otherwiseFunc = callback(fn)
			}
			return starlark.None, caps.Watcher.WatchWhen(
				func() (bool, error) {
					v, err := interp.Call(cond)
					if err != nil {
						return false, err
					}
					return bool(v.Truth()), nil
				},
				callback(then),
				otherwiseFunc,
			)
		})
	}

	trace := caps.Trace
	if trace == nil {
		trace = func(string) {}
	}
	globals[GlobalTrace] = starlark.NewBuiltin(GlobalTrace, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var id string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &id); err != nil {
			return nil, err
		}
		trace(id)
		return starlark.None, nil
	})

	return nil
}

func storeModule(store Store) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: GlobalStore,
		Members: starlark.StringDict{

			"declare": starlark.NewBuiltin("declare", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var key string
				var initial starlark.Value = starlark.None
				if err := starlark.UnpackArgs(b.Name(), args, kwargs, "key", &key, "initial?", &initial); err != nil {
					return nil, err
				}
				return starlark.Bool(store.Declare(key, initial)), nil
			}),

			"has": starlark.NewBuiltin("has", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var key string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &key); err != nil {
					return nil, err
				}
				return starlark.Bool(store.Has(key)), nil
			}),

			"get": starlark.NewBuiltin("get", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var key string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &key); err != nil {
					return nil, err
				}
				v, ok := store.Get(key)
				if !ok {
					return starlark.None, nil
				}
				return v, nil
			}),

			// set declares unknown keys.
			"set": starlark.NewBuiltin("set", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var key string
				var value starlark.Value
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &key, &value); err != nil {
					return nil, err
				}
				if !store.Set(key, value) {
					store.Declare(key, value)
				}
				return starlark.None, nil
			}),
		},
	}
}

func componentsModule(components Components, callback func(starlark.Callable) func() error) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: GlobalComponents,
		Members: starlark.StringDict{

			"add_event_listener": starlark.NewBuiltin("add_event_listener", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var typ, id, event string
				var fn starlark.Callable
				if err := starlark.UnpackArgs(b.Name(), args, kwargs, "type", &typ, "id", &id, "event", &event, "callback", &fn); err != nil {
					return nil, err
				}
				components.AddEventListener(typ, id, event, callback(fn))
				return starlark.None, nil
			}),

			"set_scenario": starlarkutil.MakeFunc("set_scenario", components.SetScenario),

			"get_property": starlark.NewBuiltin("get_property", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var typ, id, name string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 3, &typ, &id, &name); err != nil {
					return nil, err
				}
				v, err := ToValue(components.GetProperty(typ, id, name))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", b.Name(), err)
				}
				return v, nil
			}),

			"set_property": starlark.NewBuiltin("set_property", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var typ, id, name string
				var value starlark.Value
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 4, &typ, &id, &name, &value); err != nil {
					return nil, err
				}
				v, err := FromValue(value)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", b.Name(), err)
				}
				components.SetProperty(typ, id, name, v)
				return starlark.None, nil
			}),

			"get_block_page": starlark.NewBuiltin("get_block_page", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var id string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &id); err != nil {
					return nil, err
				}
				return starlark.MakeInt(components.GetBlockPage(id)), nil
			}),

			"set_block_page": starlark.NewBuiltin("set_block_page", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var id string
				var index starlark.Value
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &id, &index); err != nil {
					return nil, err
				}
				f, ok := starlark.AsFloat(index)
				if !ok {
					return nil, fmt.Errorf("%s: got %s, want number", b.Name(), index.Type())
				}
				components.SetBlockPage(id, int(f))
				return starlark.None, nil
			}),
		},
	}
}
