package blocks

import "slices"

type Variable struct {
	ID   string
	Name string
}

// Workspace holds a block graph: ordered top blocks and declared variables.
type Workspace struct {
	Registry  *Registry
	TopBlocks []*Block
	Variables []Variable
}

func NewWorkspace(registry *Registry) *Workspace {
	return &Workspace{
		Registry: registry,
	}
}

// NewBlock creates a top-level block.
func (w *Workspace) NewBlock(typ, id string) (*Block, error) {
	b, err := w.Registry.NewBlock(typ, id)
	if err != nil {
		return nil, err
	}
	b.workspace = w
	w.TopBlocks = append(w.TopBlocks, b)
	return b, nil
}

func (w *Workspace) removeTop(b *Block) {
	if index := slices.Index(w.TopBlocks, b); index != -1 {
		w.TopBlocks = slices.Delete(w.TopBlocks, index, index+1)
	}
}

// CreateVariable declares a variable. An existing ID is renamed.
func (w *Workspace) CreateVariable(id, name string) Variable {
	v := Variable{ID: id, Name: name}
	for i, existing := range w.Variables {
		if existing.ID == id {
			w.Variables[i] = v
			return v
		}
	}
	w.Variables = append(w.Variables, v)
	return v
}

func (w *Workspace) Variable(id string) (Variable, bool) {
	for _, v := range w.Variables {
		if v.ID == id {
			return v, true
		}
	}
	return Variable{}, false
}

// AllBlocks returns every block, top blocks in order, each depth first.
func (w *Workspace) AllBlocks() []*Block {
	var ret []*Block
	for _, top := range w.TopBlocks {
		ret = append(ret, top.Descendants()...)
	}
	return ret
}

func (w *Workspace) Block(id string) *Block {
	for _, b := range w.AllBlocks() {
		if b.ID == id {
			return b
		}
	}
	return nil
}
