package behaviors

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/blocks"
	"github.com/reusee/taiblock/configs"
	"github.com/reusee/taiblock/headless"
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/modes"
	"github.com/reusee/taiblock/scheduler"
	"go.starlark.net/starlark"
)

func testScope(t *testing.T, configFiles ...string) dscope.Scope {
	scope := dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(configFiles, ConfigSchema)),
	).Fork(
		func() logs.Writer {
			return io.Discard
		},
	)
	scope, err := configs.Fork(scope, dscope.Get[configs.Loader](scope))
	if err != nil {
		t.Fatal(err)
	}
	return scope
}

func workspace(t *testing.T, doc string) *blocks.Workspace {
	t.Helper()
	var d blocks.Document
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		t.Fatal(err)
	}
	ws, err := d.Workspace(blocks.DefaultRegistry())
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

const counterDocument = `{
  "blocks": {"blocks": [{
    "type": "variables_set", "id": "init",
    "fields": {"VAR": {"id": "v1"}},
    "inputs": {"VALUE": {"block": {"type": "math_number", "id": "zero", "fields": {"NUM": 0}}}},
    "next": {"block": {
      "type": "component_on_event", "id": "click",
      "fields": {"TYPE": "Button", "ID": "b1", "EVENT": "click"},
      "inputs": {"DO": {"block": {
        "type": "variables_set", "id": "inc",
        "fields": {"VAR": {"id": "v1"}},
        "inputs": {"VALUE": {"block": {
          "type": "math_arithmetic", "id": "add",
          "fields": {"OP": "ADD"},
          "inputs": {
            "A": {"block": {"type": "variables_get", "id": "get", "fields": {"VAR": {"id": "v1"}}}},
            "B": {"block": {"type": "math_number", "id": "one", "fields": {"NUM": 1}}}
          }
        }}}
      }}}
    }}
  }]},
  "variables": [{"name": "score", "id": "v1"}]
}`

func TestStoreVariables(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		_, node := host.Mount("Button", "b1", nil)
		code, err := c.Run(workspace(t, counterDocument))
		if err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}

		v, ok := c.Store().Get("score")
		if !ok || v.String() != "0" {
			t.Fatalf("got %v\n%s", v, code)
		}
		if _, ok := c.Session().Interpreter().Globals()["score"]; ok {
			t.Fatal("variable should live in the store only")
		}

		for range 2 {
			if err := host.Fire("Button", "b1", "click"); err != nil {
				t.Fatal(err)
			}
			if err := loop.Drain(); err != nil {
				t.Fatal(err)
			}
		}
		v, _ = c.Store().Get("score")
		if v.String() != "2" {
			t.Fatalf("got %v", v)
		}
		if node.Style("cursor") != "pointer" {
			t.Fatal()
		}
	})
}

func TestModuleResolves(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() logs.Writer {
			return io.Discard
		},
	).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		_, node := host.Mount("Button", "b1", nil)
		if _, err := c.Run(workspace(t, counterDocument)); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if node.ListenerCount() != 1 {
			t.Fatalf("got %d", node.ListenerCount())
		}
	})
}

// the click handler is defined above the loop that binds its counter
const countdownDocument = `{
  "blocks": {"blocks": [
    {
      "type": "component_on_event", "id": "click",
      "fields": {"TYPE": "Button", "ID": "b1", "EVENT": "click"},
      "inputs": {"DO": {"block": {
        "type": "variables_set", "id": "remember",
        "fields": {"VAR": {"id": "seen"}},
        "inputs": {"VALUE": {"block": {"type": "variables_get", "id": "read", "fields": {"VAR": {"id": "i"}}}}}
      }}}
    },
    {
      "type": "variables_set", "id": "init",
      "fields": {"VAR": {"id": "digits"}},
      "inputs": {"VALUE": {"block": {"type": "math_number", "id": "zero", "fields": {"NUM": 0}}}},
      "next": {"block": {
        "type": "controls_for", "id": "loop",
        "fields": {"VAR": {"id": "i"}},
        "inputs": {
          "FROM": {"block": {"type": "math_number", "id": "from", "fields": {"NUM": 5}}},
          "TO": {"block": {"type": "math_number", "id": "to", "fields": {"NUM": 1}}},
          "BY": {"block": {"type": "math_number", "id": "by", "fields": {"NUM": 1}}},
          "DO": {"block": {
            "type": "variables_set", "id": "append",
            "fields": {"VAR": {"id": "digits"}},
            "inputs": {"VALUE": {"block": {
              "type": "math_arithmetic", "id": "add", "fields": {"OP": "ADD"},
              "inputs": {
                "A": {"block": {
                  "type": "math_arithmetic", "id": "shift", "fields": {"OP": "MULTIPLY"},
                  "inputs": {
                    "A": {"block": {"type": "variables_get", "id": "digits_get", "fields": {"VAR": {"id": "digits"}}}},
                    "B": {"block": {"type": "math_number", "id": "ten", "fields": {"NUM": 10}}}
                  }
                }},
                "B": {"block": {"type": "variables_get", "id": "i_get", "fields": {"VAR": {"id": "i"}}}}
              }
            }}}
          }}
        }
      }}
    }
  ]},
  "variables": [
    {"name": "i", "id": "i"},
    {"name": "digits", "id": "digits"},
    {"name": "seen", "id": "seen"}
  ]
}`

func TestLoopCountdown(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		host.Mount("Button", "b1", nil)
		code, err := c.Run(workspace(t, countdownDocument))
		if err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatalf("%v\n%s", err, code)
		}
		if v, _ := c.Store().Get("digits"); v.String() != "54321" {
			t.Fatalf("got %v\n%s", v, code)
		}

		if err := host.Fire("Button", "b1", "click"); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatalf("%v\n%s", err, code)
		}
		if v, _ := c.Store().Get("seen"); v.String() != "1" {
			t.Fatalf("got %v", v)
		}
	})
}

func TestExecReplacesListeners(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		_, b1 := host.Mount("Button", "b1", nil)
		_, b2 := host.Mount("Button", "b2", nil)
		surface := host.Renderer.Surface()

		if err := c.Exec(`
def on_click():
    pass
components.add_event_listener("Button", "b1", "click", on_click)
components.add_event_listener("Button", "b1", "hover", on_click)
components.add_event_listener("Button", "b2", "click", on_click)
keyboard.add_event_listener("any", "keydown", on_click)
`); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if b1.Added != 2 || b2.Added != 1 || surface.Added != 1 {
			t.Fatalf("got %d %d %d", b1.Added, b2.Added, surface.Added)
		}

		if err := c.Exec(`components.add_event_listener("Button", "b1", "click", lambda: None)`); err != nil {
			t.Fatal(err)
		}
		// nothing of the second program has run yet
		for _, node := range []*headless.Node{b1, b2, surface} {
			if node.Added != node.Removed {
				t.Fatalf("%s: added %d removed %d", node.Name, node.Added, node.Removed)
			}
		}

		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if b1.ListenerCount() != 1 {
			t.Fatalf("got %d", b1.ListenerCount())
		}
	})
}

func TestResetIdempotent(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		c.Reset()
		c.Reset()

		comp, node := host.Mount("Button", "b1", nil)
		node.SetStyle("cursor", "text")
		if err := c.Exec(`
components.add_event_listener("Button", "b1", "click", lambda: None)
components.set_property("Button", "b1", "label", "go")
keyboard.add_event_listener("Enter", "keydown", lambda: None)
`); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if v, _ := host.Model.Property(comp, "label"); v != "go" {
			t.Fatalf("got %v", v)
		}

		c.Reset()
		snapshot := func() [4]any {
			return [4]any{
				node.Style("cursor"),
				node.Removed,
				host.Renderer.Surface().Removed,
				len(host.Model.Overrides(comp)),
			}
		}
		once := snapshot()
		c.Reset()
		if snapshot() != once {
			t.Fatalf("got %v, want %v", snapshot(), once)
		}
		if once[0] != "text" || once[3] != 0 {
			t.Fatalf("got %v", once)
		}
		if c.Store() != nil || c.Session() != nil {
			t.Fatal()
		}
		if err := c.Append("x = 1"); !errors.Is(err, scheduler.ErrNoSession) {
			t.Fatalf("got %v", err)
		}
	})
}

const whenDocument = `{
  "blocks": {"blocks": [{
    "type": "reactive_when", "id": "when",
    "inputs": {
      "CONDITION": {"block": {
        "type": "logic_compare", "id": "cmp",
        "fields": {"OP": "GT"},
        "inputs": {
          "A": {"block": {"type": "media_time_get", "id": "now"}},
          "B": {"block": {"type": "math_number", "id": "five", "fields": {"NUM": 5}}}
        }
      }},
      "DO": {"block": {"type": "component_set_scenario", "id": "go", "fields": {"SCENARIO": "next"}}}
    }
  }]}
}`

func TestMediaTimeGuardedScenario(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		if _, err := c.Run(workspace(t, whenDocument)); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if len(host.Model.ScenarioChanges) != 0 {
			t.Fatal("condition is false at start")
		}

		advance := func(time float64) {
			host.Player.Advance(time)
			if err := loop.Drain(); err != nil {
				t.Fatal(err)
			}
		}

		advance(6)
		if len(host.Model.ScenarioChanges) != 1 || host.Model.Scenario() != "next" {
			t.Fatalf("got %v", host.Model.ScenarioChanges)
		}
		// no new transition
		advance(7)
		advance(8)
		if len(host.Model.ScenarioChanges) != 1 {
			t.Fatalf("got %v", host.Model.ScenarioChanges)
		}
		// falling then rising again is a new transition
		advance(2)
		advance(9)
		if len(host.Model.ScenarioChanges) != 2 {
			t.Fatalf("got %v", host.Model.ScenarioChanges)
		}

		c.Reset()
		advance(1)
		advance(10)
		if len(host.Model.ScenarioChanges) != 2 {
			t.Fatal("disposed watch should not fire")
		}
	})
}

func TestWatchElse(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		loop *scheduler.ManualLoop,
	) {
		if err := c.Exec(`
store.declare("n", 0)
store.declare("log", "")
def then():
    store.set("log", store.get("log") + "T")
def otherwise():
    store.set("log", store.get("log") + "E")
watch_when(lambda: store.get("n") > 1, then, otherwise)
store.set("n", 1)
store.set("n", 2)
store.set("n", 3)
store.set("n", 0)
`); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		v, _ := c.Store().Get("log")
		if v != starlark.String("ETE") {
			t.Fatalf("got %v", v)
		}
	})
}

func TestFaultPropagates(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		loop *scheduler.ManualLoop,
	) {
		if err := c.Exec("x = 1\ny = x // 0\nz = 1\n"); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err == nil {
			t.Fatal("fault should reach the loop")
		}
		if c.Session().Err() == nil {
			t.Fatal("session should be dead")
		}
		if _, ok := c.Session().Interpreter().Globals()["z"]; ok {
			t.Fatal("dead session should not continue")
		}
		if err := c.Append("w = 1"); !errors.Is(err, scheduler.ErrSessionDead) {
			t.Fatalf("got %v", err)
		}

		// next exec starts clean
		if err := c.Exec("ok = True"); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestConditionFaultOutsideStep(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		if err := c.Exec(`
def then():
    pass
watch_when(lambda: 10 // (3 - int(media_time.get())) > 100, then)
`); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		host.Player.Advance(3)
		if err := loop.Drain(); err == nil {
			t.Fatal("condition fault should reach the loop")
		}
		if c.Session().Err() == nil {
			t.Fatal("session should be dead")
		}
	})
}

func TestExecParseError(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
	) {
		if err := c.Exec("x = ("); err == nil {
			t.Fatal("should fail")
		}
		if c.Session() != nil {
			t.Fatal()
		}
	})
}

func TestAppend(t *testing.T) {
	testScope(t).Call(func(
		c *Coordinator,
		loop *scheduler.ManualLoop,
	) {
		if err := c.Exec(`store.declare("n", 1)`); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if c.Session().Status() != scheduler.Idle {
			t.Fatal()
		}
		if err := c.Append(`store.set("n", store.get("n") + 1)`); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if v, _ := c.Store().Get("n"); v.String() != "2" {
			t.Fatalf("got %v", v)
		}
	})
}

func TestTraceConfig(t *testing.T) {
	testScope(t, "testdata/trace.cue").Call(func(
		c *Coordinator,
		config Config,
		host *headless.Host,
		loop *scheduler.ManualLoop,
	) {
		if config.StatementPrefix != TracePrefix || config.Cursor != "grab" {
			t.Fatalf("got %+v", config)
		}
		var traced []string
		c.Trace = func(id string) {
			traced = append(traced, id)
		}
		_, node := host.Mount("Button", "b1", nil)
		if _, err := c.Run(workspace(t, counterDocument)); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		if node.Style("cursor") != "grab" {
			t.Fatalf("got %q", node.Style("cursor"))
		}
		if err := host.Fire("Button", "b1", "click"); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err != nil {
			t.Fatal(err)
		}
		want := []string{"init", "click", "inc"}
		if len(traced) != len(want) {
			t.Fatalf("got %v", traced)
		}
		for i := range want {
			if traced[i] != want[i] {
				t.Fatalf("got %v", traced)
			}
		}
	})
}

func TestMaxStepsConfig(t *testing.T) {
	testScope(t, "testdata/steps.cue").Call(func(
		c *Coordinator,
		loop *scheduler.ManualLoop,
	) {
		if err := c.Exec("x = 0\nwhile True:\n    x += 1\n"); err != nil {
			t.Fatal(err)
		}
		if err := loop.Drain(); err == nil {
			t.Fatal("step budget should stop the loop")
		}
	})
}
