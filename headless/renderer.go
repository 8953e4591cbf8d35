package headless

import "github.com/reusee/taiblock/bridges"

type Renderer struct {
	elements map[*Component]*Node
	surface  *Node
}

var _ bridges.Renderer = new(Renderer)

func NewRenderer() *Renderer {
	return &Renderer{
		elements: make(map[*Component]*Node),
		surface:  NewNode("root"),
	}
}

// Mount renders c, returning its node.
func (r *Renderer) Mount(c *Component) *Node {
	node, ok := r.elements[c]
	if !ok {
		node = NewNode(c.typ + "/" + c.id)
		r.elements[c] = node
	}
	return node
}

func (r *Renderer) Unmount(c *Component) {
	delete(r.elements, c)
}

func (r *Renderer) Element(c *Component) *Node {
	return r.elements[c]
}

func (r *Renderer) ComponentElement(c bridges.Component) (bridges.Node, bool) {
	component, ok := c.(*Component)
	if !ok {
		return nil, false
	}
	node, ok := r.elements[component]
	if !ok {
		return nil, false
	}
	return node, true
}

func (r *Renderer) InputSurface() bridges.Node {
	if r.surface == nil {
		return nil
	}
	return r.surface
}

func (r *Renderer) Surface() *Node {
	return r.surface
}
