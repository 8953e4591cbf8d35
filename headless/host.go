package headless

import (
	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/reactive"
)

// Host is an in-memory host application.
type Host struct {
	Runtime  *reactive.Runtime
	Model    *Model
	Renderer *Renderer
	Player   *Player
}

func New(rt *reactive.Runtime) *Host {
	return &Host{
		Runtime:  rt,
		Model:    NewModel(),
		Renderer: NewRenderer(),
		Player:   NewPlayer(rt),
	}
}

func (h *Host) Bridges() bridges.Host {
	return bridges.Host{
		Model:    h.Model,
		Renderer: h.Renderer,
		Player:   h.Player,
	}
}

// Mount adds and renders a component.
func (h *Host) Mount(typ, id string, props map[string]any) (*Component, *Node) {
	c := h.Model.Add(typ, id, props)
	return c, h.Renderer.Mount(c)
}

// Fire dispatches event on the node of the component (typ, id).
func (h *Host) Fire(typ, id, event string) error {
	c, ok := h.Model.components[componentKey{typ, id}]
	if !ok {
		return nil
	}
	node := h.Renderer.Element(c)
	if node == nil {
		return nil
	}
	return node.Dispatch(&bridges.Event{
		Type: event,
	})
}

// Key dispatches a keydown then a keyup of key on the input surface.
func (h *Host) Key(key string) (down *bridges.Event, err error) {
	down = &bridges.Event{
		Type: "keydown",
		Key:  key,
	}
	if err := h.Renderer.surface.Dispatch(down); err != nil {
		return down, err
	}
	return down, h.Renderer.surface.Dispatch(&bridges.Event{
		Type: "keyup",
		Key:  key,
	})
}
