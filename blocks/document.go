package blocks

import (
	"fmt"
	"slices"
)

// Document is a workspace in the block editor's JSON serialization.
type Document struct {
	Blocks    DocumentBlocks  `json:"blocks"`
	Variables []VariableState `json:"variables,omitempty"`
}

type DocumentBlocks struct {
	LanguageVersion int          `json:"languageVersion"`
	Blocks          []BlockState `json:"blocks"`
}

type BlockState struct {
	Type       string                `json:"type"`
	ID         string                `json:"id"`
	ExtraState map[string]any        `json:"extraState,omitempty"`
	Fields     map[string]any        `json:"fields,omitempty"`
	Inputs     map[string]Connection `json:"inputs,omitempty"`
	Next       *Connection           `json:"next,omitempty"`
}

type Connection struct {
	Block *BlockState `json:"block,omitempty"`
}

type VariableState struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Workspace builds the block graph of d.
func (d *Document) Workspace(registry *Registry) (*Workspace, error) {
	ws := NewWorkspace(registry)
	for _, v := range d.Variables {
		ws.CreateVariable(v.ID, v.Name)
	}
	for i := range d.Blocks.Blocks {
		if _, err := ws.load(&d.Blocks.Blocks[i]); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (w *Workspace) load(state *BlockState) (*Block, error) {
	b, err := w.NewBlock(state.Type, state.ID)
	if err != nil {
		return nil, err
	}
	if state.ExtraState != nil {
		if err := b.LoadState(state.ExtraState); err != nil {
			return nil, fmt.Errorf("block %s: %w", state.ID, err)
		}
	}

	names := make([]string, 0, len(state.Fields))
	for name := range state.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		value, err := fieldValue(state.Fields[name])
		if err != nil {
			return nil, fmt.Errorf("block %s field %s: %w", state.ID, name, err)
		}
		if err := b.SetFieldValue(name, value); err != nil {
			return nil, err
		}
		if f := b.Field(name); f.Kind == VariableField {
			if _, ok := w.Variable(value); !ok {
				// the editor may reference a variable by name only
				w.CreateVariable(value, value)
			}
		}
	}

	// connect in input order
	for _, input := range slices.Clone(b.Inputs) {
		conn, ok := state.Inputs[input.Name]
		if !ok || conn.Block == nil {
			continue
		}
		child, err := w.load(conn.Block)
		if err != nil {
			return nil, err
		}
		if err := b.Connect(input.Name, child); err != nil {
			return nil, err
		}
	}
	for name := range state.Inputs {
		if b.Input(name) == nil {
			return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchInput, b.Type, name)
		}
	}

	if state.Next != nil && state.Next.Block != nil {
		next, err := w.load(state.Next.Block)
		if err != nil {
			return nil, err
		}
		if err := b.SetNext(next); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func fieldValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case map[string]any:
		id, ok := v["id"].(string)
		if !ok {
			return "", fmt.Errorf("%w: variable reference without id", ErrBadState)
		}
		return id, nil
	case nil:
		return "", nil
	}
	return fmt.Sprint(v), nil
}

// Document serializes the workspace.
func (w *Workspace) Document() *Document {
	doc := new(Document)
	for _, v := range w.Variables {
		doc.Variables = append(doc.Variables, VariableState{
			Name: v.Name,
			ID:   v.ID,
		})
	}
	for _, top := range w.TopBlocks {
		doc.Blocks.Blocks = append(doc.Blocks.Blocks, *top.state())
	}
	return doc
}

func (b *Block) state() *BlockState {
	state := &BlockState{
		Type:       b.Type,
		ID:         b.ID,
		ExtraState: b.SaveState(),
	}
	for _, input := range b.Inputs {
		for _, f := range input.Fields {
			switch f.Kind {
			case LabelField, ButtonField:
				continue
			}
			if state.Fields == nil {
				state.Fields = make(map[string]any)
			}
			if f.Kind == VariableField {
				state.Fields[f.Name] = map[string]any{
					"id": f.Value,
				}
			} else {
				state.Fields[f.Name] = f.Value
			}
		}
		if input.Target != nil {
			if state.Inputs == nil {
				state.Inputs = make(map[string]Connection)
			}
			state.Inputs[input.Name] = Connection{
				Block: input.Target.state(),
			}
		}
	}
	if b.Next != nil {
		state.Next = &Connection{
			Block: b.Next.state(),
		}
	}
	return state
}
