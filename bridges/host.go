package bridges

// Component is an instance in the host component model.
type Component interface {
	Type() string
	ID() string
}

// ComponentModel is the host's component data model.
type ComponentModel interface {
	GetComponent(typ, id string) (Component, bool)
	Property(c Component, name string) (any, bool)
	// SetOverrides applies patch to c under key. Higher priorities win.
	SetOverrides(c Component, key string, patch map[string]any, priority int)
	// ClearOverrides removes the overrides under key from c, or from every component when c is nil.
	ClearOverrides(c Component, key string)
	BlockActivePage(c Component) int
	SetBlockActivePage(c Component, index int)
	SetActiveScenario(id string)
}

// Renderer maps components to live nodes.
type Renderer interface {
	ComponentElement(c Component) (Node, bool)
	// InputSurface is the root node receiving keyboard events.
	InputSurface() Node
}

// Node is a live rendered node. Listeners are identified by pointer.
type Node interface {
	AddEventListener(event string, l *Listener)
	RemoveEventListener(event string, l *Listener)
	Style(name string) string
	SetStyle(name, value string)
}

type Listener struct {
	Handle func(ev *Event) error
}

type Event struct {
	Type             string
	Key              string
	defaultPrevented bool
}

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

type MediaPlayer interface {
	CurrentTime() float64
	SeekTo(t float64)
}

// Host bundles the collaborators the bridges are bound to.
type Host struct {
	Model    ComponentModel
	Renderer Renderer
	Player   MediaPlayer
}
