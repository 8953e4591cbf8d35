package bridges

import (
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/sandbox"
)

const (
	// OverrideKey tags every property override made by programs.
	OverrideKey = "behaviors"

	OverridePriority = 100

	BlockType = "Block"

	DefaultCursor = "pointer"
)

// Components binds programs to the component model and records every
// listener and cursor change so Reset can undo them.
type Components struct {
	model    ComponentModel
	renderer Renderer
	diag     Diagnostics
	logger   logs.Logger
	cursor   string

	nodes   []Node
	entries map[Node]*nodeEntry
}

type nodeEntry struct {
	registrations []registration
	cursorSaved   bool
	cursor        string
}

type registration struct {
	event    string
	listener *Listener
}

var _ sandbox.Components = new(Components)

func NewComponents(model ComponentModel, renderer Renderer, diag Diagnostics, logger logs.Logger) *Components {
	if diag == nil {
		diag = NopDiagnostics
	}
	return &Components{
		model:    model,
		renderer: renderer,
		diag:     diag,
		logger:   logger,
		cursor:   DefaultCursor,
		entries:  make(map[Node]*nodeEntry),
	}
}

// SetCursor sets the cursor forced on nodes with click listeners.
func (c *Components) SetCursor(cursor string) {
	c.cursor = cursor
}

func (c *Components) lookup(typ, id string) (Component, bool) {
	component, ok := c.model.GetComponent(typ, id)
	if !ok {
		c.diag.LookupMiss(Miss{
			Kind: MissComponent,
			Type: typ,
			ID:   id,
		})
	}
	return component, ok
}

func (c *Components) AddEventListener(typ, id, event string, callback func() error) {
	component, ok := c.lookup(typ, id)
	if !ok {
		return
	}
	node, ok := c.renderer.ComponentElement(component)
	if !ok {
		c.diag.LookupMiss(Miss{
			Kind: MissElement,
			Type: typ,
			ID:   id,
		})
		return
	}

	listener := &Listener{
		Handle: func(*Event) error {
			return callback()
		},
	}
	node.AddEventListener(event, listener)

	entry, ok := c.entries[node]
	if !ok {
		entry = new(nodeEntry)
		c.entries[node] = entry
		c.nodes = append(c.nodes, node)
	}
	entry.registrations = append(entry.registrations, registration{
		event:    event,
		listener: listener,
	})

	if event == "click" {
		if !entry.cursorSaved {
			entry.cursorSaved = true
			entry.cursor = node.Style("cursor")
		}
		node.SetStyle("cursor", c.cursor)
	}

	c.logger.Debug("component listener", "type", typ, "id", id, "event", event)
}

func (c *Components) SetScenario(id string) {
	c.model.SetActiveScenario(id)
}

func (c *Components) GetProperty(typ, id, name string) any {
	component, ok := c.lookup(typ, id)
	if !ok {
		return nil
	}
	value, ok := c.model.Property(component, name)
	if !ok {
		c.diag.LookupMiss(Miss{
			Kind: MissProperty,
			Type: typ,
			ID:   id,
			Name: name,
		})
		return nil
	}
	return value
}

func (c *Components) SetProperty(typ, id, name string, value any) {
	component, ok := c.lookup(typ, id)
	if !ok {
		return
	}
	c.model.SetOverrides(component, OverrideKey, map[string]any{
		name: value,
	}, OverridePriority)
}

func (c *Components) GetBlockPage(id string) int {
	component, ok := c.lookup(BlockType, id)
	if !ok {
		return 0
	}
	return c.model.BlockActivePage(component)
}

func (c *Components) SetBlockPage(id string, index int) {
	component, ok := c.lookup(BlockType, id)
	if !ok {
		return
	}
	c.model.SetBlockActivePage(component, index)
}

// Listeners returns the number of recorded listeners per node.
func (c *Components) Listeners() map[Node]int {
	ret := make(map[Node]int, len(c.entries))
	for node, entry := range c.entries {
		ret[node] = len(entry.registrations)
	}
	return ret
}

// Reset removes every recorded listener, restores saved cursors and clears
// program overrides. Calling it again does nothing more.
func (c *Components) Reset() {
	c.model.ClearOverrides(nil, OverrideKey)
	for _, node := range c.nodes {
		entry := c.entries[node]
		for _, r := range entry.registrations {
			node.RemoveEventListener(r.event, r.listener)
		}
		if entry.cursorSaved {
			node.SetStyle("cursor", entry.cursor)
		}
	}
	if len(c.nodes) > 0 {
		c.logger.Debug("components reset", "nodes", len(c.nodes))
	}
	c.nodes = nil
	clear(c.entries)
}
