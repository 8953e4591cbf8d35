package bridges_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/headless"
	"github.com/reusee/taiblock/reactive"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newComponents(t *testing.T) (*headless.Host, *bridges.Components, *[]bridges.Miss) {
	t.Helper()
	host := headless.New(reactive.NewRuntime())
	var misses []bridges.Miss
	components := bridges.NewComponents(
		host.Model,
		host.Renderer,
		bridges.DiagnosticsFunc(func(miss bridges.Miss) {
			misses = append(misses, miss)
		}),
		testLogger(),
	)
	return host, components, &misses
}

func TestClickCursor(t *testing.T) {
	host, components, _ := newComponents(t)
	_, styled := host.Mount("Button", "b1", nil)
	styled.SetStyle("cursor", "text")
	_, plain := host.Mount("Button", "b2", nil)

	clicks := 0
	callback := func() error {
		clicks++
		return nil
	}
	components.AddEventListener("Button", "b1", "click", callback)
	components.AddEventListener("Button", "b1", "click", callback)
	components.AddEventListener("Button", "b2", "click", callback)
	components.AddEventListener("Button", "b2", "hover", callback)

	if styled.Style("cursor") != "pointer" || plain.Style("cursor") != "pointer" {
		t.Fatal("click should force pointer")
	}
	if err := host.Fire("Button", "b1", "click"); err != nil {
		t.Fatal(err)
	}
	if clicks != 2 {
		t.Fatalf("got %d", clicks)
	}

	components.Reset()
	if styled.Style("cursor") != "text" {
		t.Fatalf("got %q", styled.Style("cursor"))
	}
	if plain.HasStyle("cursor") {
		t.Fatal("unset cursor should be restored as unset")
	}
	if styled.ListenerCount() != 0 || plain.ListenerCount() != 0 {
		t.Fatal("listeners should be removed")
	}
	if styled.Added != styled.Removed || plain.Added != plain.Removed {
		t.Fatal("add and remove counts should match")
	}
}

func TestResetTwice(t *testing.T) {
	host, components, _ := newComponents(t)
	c, node := host.Mount("Button", "b1", nil)
	node.SetStyle("cursor", "text")
	components.AddEventListener("Button", "b1", "click", func() error {
		return nil
	})
	components.SetProperty("Button", "b1", "label", "go")

	components.Reset()
	node.SetStyle("cursor", "wait")
	removed := node.Removed
	components.Reset()

	if node.Style("cursor") != "wait" {
		t.Fatal("second reset should not restore again")
	}
	if node.Removed != removed {
		t.Fatal("second reset should not remove again")
	}
	if len(host.Model.Overrides(c)) != 0 {
		t.Fatal("overrides should be cleared")
	}
	if len(components.Listeners()) != 0 {
		t.Fatal("table should be empty")
	}
}

func TestPropertyOverrides(t *testing.T) {
	host, components, misses := newComponents(t)
	c, _ := host.Mount("Text", "t1", map[string]any{
		"color": "black",
	})
	host.Model.SetOverrides(c, "theme", map[string]any{
		"color": "gray",
	}, 50)

	if v := components.GetProperty("Text", "t1", "color"); v != "gray" {
		t.Fatalf("got %v", v)
	}
	components.SetProperty("Text", "t1", "color", "red")
	if v := components.GetProperty("Text", "t1", "color"); v != "red" {
		t.Fatalf("got %v", v)
	}
	if c.Props["color"] != "black" {
		t.Fatal("authored data should not change")
	}

	components.Reset()
	if v := components.GetProperty("Text", "t1", "color"); v != "gray" {
		t.Fatalf("other override sources should survive, got %v", v)
	}

	if v := components.GetProperty("Text", "t1", "size"); v != nil {
		t.Fatalf("got %v", v)
	}
	if len(*misses) != 1 || (*misses)[0].Kind != bridges.MissProperty {
		t.Fatalf("got %v", *misses)
	}
}

func TestLookupMisses(t *testing.T) {
	host, components, misses := newComponents(t)
	host.Model.Add("Button", "hidden", nil)

	components.AddEventListener("Button", "absent", "click", func() error {
		return nil
	})
	components.AddEventListener("Button", "hidden", "click", func() error {
		return nil
	})
	components.SetProperty("Button", "absent", "label", "x")
	components.SetBlockPage("absent", 1)
	if page := components.GetBlockPage("absent"); page != 0 {
		t.Fatalf("got %d", page)
	}

	kinds := []bridges.MissKind{
		bridges.MissComponent,
		bridges.MissElement,
		bridges.MissComponent,
		bridges.MissComponent,
		bridges.MissComponent,
	}
	if len(*misses) != len(kinds) {
		t.Fatalf("got %v", *misses)
	}
	for i, kind := range kinds {
		if (*misses)[i].Kind != kind {
			t.Fatalf("got %v", *misses)
		}
	}
	if len(components.Listeners()) != 0 {
		t.Fatal("misses should record nothing")
	}

	// default sink is silent
	silent := bridges.NewComponents(host.Model, host.Renderer, nil, testLogger())
	silent.SetProperty("Button", "absent", "label", "x")
}

func TestBlockPageAndScenario(t *testing.T) {
	host, components, _ := newComponents(t)
	host.Model.Add(bridges.BlockType, "slides", nil)
	components.SetBlockPage("slides", 3)
	if page := components.GetBlockPage("slides"); page != 3 {
		t.Fatalf("got %d", page)
	}
	components.SetScenario("outro")
	if host.Model.Scenario() != "outro" {
		t.Fatal()
	}
}

func TestKeyboard(t *testing.T) {
	host := headless.New(reactive.NewRuntime())
	keyboard := bridges.NewKeyboard(host.Renderer, nil, testLogger())

	var anyCount, upCount int
	keyboard.AddEventListener("any", "keydown", func() error {
		anyCount++
		return nil
	})
	keyboard.AddEventListener("ArrowUp", "keydown", func() error {
		upCount++
		return nil
	})

	ev, err := host.Key("ArrowDown")
	if err != nil {
		t.Fatal(err)
	}
	if anyCount != 1 || upCount != 0 {
		t.Fatalf("got %d %d", anyCount, upCount)
	}
	if !ev.DefaultPrevented() {
		t.Fatal("any should prevent default")
	}

	ev, err = host.Key("ArrowUp")
	if err != nil {
		t.Fatal(err)
	}
	if anyCount != 2 || upCount != 1 {
		t.Fatalf("got %d %d", anyCount, upCount)
	}
	if !ev.DefaultPrevented() {
		t.Fatal("exact match should prevent default")
	}

	if keyboard.Listeners() != 2 {
		t.Fatalf("got %d", keyboard.Listeners())
	}
	keyboard.Reset()
	keyboard.Reset()
	surface := host.Renderer.Surface()
	if surface.ListenerCount() != 0 || surface.Added != surface.Removed {
		t.Fatal("listeners should be removed once")
	}
	if _, err := host.Key("ArrowUp"); err != nil {
		t.Fatal(err)
	}
	if upCount != 1 {
		t.Fatal("removed listener fired")
	}
}

func TestKeyboardUnmatchedKeepsDefault(t *testing.T) {
	host := headless.New(reactive.NewRuntime())
	keyboard := bridges.NewKeyboard(host.Renderer, nil, testLogger())
	keyboard.AddEventListener("Enter", "keydown", func() error {
		return nil
	})
	ev, err := host.Key("Escape")
	if err != nil {
		t.Fatal(err)
	}
	if ev.DefaultPrevented() {
		t.Fatal("unmatched keys should not be prevented")
	}
}

func TestMediaTime(t *testing.T) {
	host := headless.New(reactive.NewRuntime())
	media := bridges.NewMediaTime(host.Player, nil)
	host.Player.Advance(4)
	if media.Get() != 4 {
		t.Fatal()
	}
	media.Set(10)
	if host.Player.CurrentTime() != 10 || len(host.Player.Seeks) != 1 {
		t.Fatal()
	}

	var misses int
	missing := bridges.NewMediaTime(nil, bridges.DiagnosticsFunc(func(bridges.Miss) {
		misses++
	}))
	if missing.Get() != 0 {
		t.Fatal()
	}
	missing.Set(1)
	if misses != 2 {
		t.Fatalf("got %d", misses)
	}
}

func TestLogDiagnostics(t *testing.T) {
	bridges.LogDiagnostics(testLogger()).LookupMiss(bridges.Miss{
		Kind: bridges.MissComponent,
		Type: "Button",
		ID:   "b1",
	})
}
