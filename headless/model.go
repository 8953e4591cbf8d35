package headless

import (
	"slices"

	"github.com/reusee/taiblock/bridges"
)

type Component struct {
	typ   string
	id    string
	Props map[string]any

	overrides map[string]*override
	page      int
}

type override struct {
	patch    map[string]any
	priority int
}

var _ bridges.Component = new(Component)

func (c *Component) Type() string {
	return c.typ
}

func (c *Component) ID() string {
	return c.id
}

type componentKey struct {
	typ string
	id  string
}

// Model is an in-memory component model.
type Model struct {
	components map[componentKey]*Component
	order      []*Component
	scenario   string

	// ScenarioChanges records every scenario switch in order.
	ScenarioChanges []string
}

var _ bridges.ComponentModel = new(Model)

func NewModel() *Model {
	return &Model{
		components: make(map[componentKey]*Component),
	}
}

func (m *Model) Add(typ, id string, props map[string]any) *Component {
	if props == nil {
		props = make(map[string]any)
	}
	c := &Component{
		typ:       typ,
		id:        id,
		Props:     props,
		overrides: make(map[string]*override),
	}
	m.components[componentKey{typ, id}] = c
	m.order = append(m.order, c)
	return c
}

func (m *Model) GetComponent(typ, id string) (bridges.Component, bool) {
	c, ok := m.components[componentKey{typ, id}]
	if !ok {
		return nil, false
	}
	return c, true
}

func (m *Model) Property(c bridges.Component, name string) (any, bool) {
	component := c.(*Component)
	var best *override
	for _, o := range component.overrides {
		if _, ok := o.patch[name]; !ok {
			continue
		}
		if best == nil || o.priority > best.priority {
			best = o
		}
	}
	if best != nil {
		return best.patch[name], true
	}
	v, ok := component.Props[name]
	return v, ok
}

func (m *Model) SetOverrides(c bridges.Component, key string, patch map[string]any, priority int) {
	component := c.(*Component)
	o, ok := component.overrides[key]
	if !ok {
		o = &override{
			patch: make(map[string]any),
		}
		component.overrides[key] = o
	}
	o.priority = priority
	for k, v := range patch {
		o.patch[k] = v
	}
}

func (m *Model) ClearOverrides(c bridges.Component, key string) {
	if c != nil {
		delete(c.(*Component).overrides, key)
		return
	}
	for _, component := range m.order {
		delete(component.overrides, key)
	}
}

// Overrides returns the override keys on c, sorted.
func (m *Model) Overrides(c *Component) []string {
	var keys []string
	for key := range c.overrides {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (m *Model) BlockActivePage(c bridges.Component) int {
	return c.(*Component).page
}

func (m *Model) SetBlockActivePage(c bridges.Component, index int) {
	c.(*Component).page = index
}

func (m *Model) SetActiveScenario(id string) {
	m.scenario = id
	m.ScenarioChanges = append(m.ScenarioChanges, id)
}

func (m *Model) Scenario() string {
	return m.scenario
}
