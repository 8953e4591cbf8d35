package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SaveState returns the extra state of every mutator, or nil for blocks
// without mutators.
func (b *Block) SaveState() map[string]any {
	if b.definition == nil || len(b.definition.Mutators) == 0 {
		return nil
	}
	state := make(map[string]any)
	for _, m := range b.definition.Mutators {
		m.SaveState(b, state)
	}
	return state
}

// LoadState applies extra state produced by SaveState. A nil state collapses
// every optional branch.
func (b *Block) LoadState(state map[string]any) error {
	if b.definition == nil {
		return nil
	}
	for _, m := range b.definition.Mutators {
		if err := m.LoadState(b, state); err != nil {
			return err
		}
	}
	return nil
}

func (b *Block) MarshalState() ([]byte, error) {
	return json.Marshal(b.SaveState())
}

func (b *Block) UnmarshalState(data []byte) error {
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("%w: %v", ErrBadState, err)
	}
	return b.LoadState(state)
}

// Shape renders the inputs and fields of b, one input per line.
func (b *Block) Shape() string {
	buf := new(strings.Builder)
	for _, input := range b.Inputs {
		fmt.Fprintf(buf, "%s %s", input.Kind, input.Name)
		for _, f := range input.Fields {
			fmt.Fprintf(buf, " [%s %s %q]", f.Kind, f.Name, f.Value)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
