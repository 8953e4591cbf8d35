package headless

import (
	"errors"
	"slices"

	"github.com/reusee/taiblock/bridges"
)

// Node is an in-memory rendered node that counts listener changes.
type Node struct {
	Name string

	styles    map[string]string
	listeners map[string][]*bridges.Listener

	Added   int
	Removed int
}

var _ bridges.Node = new(Node)

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		styles:    make(map[string]string),
		listeners: make(map[string][]*bridges.Listener),
	}
}

func (n *Node) AddEventListener(event string, l *bridges.Listener) {
	n.listeners[event] = append(n.listeners[event], l)
	n.Added++
}

func (n *Node) RemoveEventListener(event string, l *bridges.Listener) {
	i := slices.Index(n.listeners[event], l)
	if i < 0 {
		return
	}
	n.listeners[event] = slices.Delete(n.listeners[event], i, i+1)
	n.Removed++
}

func (n *Node) Style(name string) string {
	return n.styles[name]
}

// SetStyle sets a style; the empty value unsets it.
func (n *Node) SetStyle(name, value string) {
	if value == "" {
		delete(n.styles, name)
		return
	}
	n.styles[name] = value
}

// HasStyle reports whether name is set.
func (n *Node) HasStyle(name string) bool {
	_, ok := n.styles[name]
	return ok
}

func (n *Node) ListenerCount() (count int) {
	for _, ls := range n.listeners {
		count += len(ls)
	}
	return
}

// Dispatch calls the listeners of ev.Type in registration order.
func (n *Node) Dispatch(ev *bridges.Event) error {
	var errs []error
	for _, l := range slices.Clone(n.listeners[ev.Type]) {
		if err := l.Handle(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
