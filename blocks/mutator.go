package blocks

import (
	"fmt"
	"strings"
)

// Mutator changes a block's shape on author toggles. Implementations keep no
// per-block state: everything is derived from the block's inputs.
type Mutator interface {
	// Branch names the input the mutator manages.
	Branch() string
	Init(b *Block)
	SaveState(b *Block, state map[string]any)
	LoadState(b *Block, state map[string]any) error
	OnPlus(b *Block)
	OnMinus(b *Block)
}

// OptionalBranch toggles one optional statement input with a plus/minus
// control held by a dedicated dummy input.
type OptionalBranch struct {
	input string
	label string
	key   string
}

var _ Mutator = new(OptionalBranch)

func NewOptionalBranch(input, label string) *OptionalBranch {
	return &OptionalBranch{
		input: input,
		label: label,
		key:   strings.ToLower(input),
	}
}

func (o *OptionalBranch) Branch() string {
	return o.input
}

func (o *OptionalBranch) toggleName() string {
	return o.input + "_TOGGLE"
}

func (o *OptionalBranch) PlusField() string {
	return "PLUS_" + o.input
}

func (o *OptionalBranch) MinusField() string {
	return "MINUS_" + o.input
}

func (o *OptionalBranch) Init(b *Block) {
	if b.Input(o.toggleName()) == nil {
		b.AppendDummyInput(o.toggleName(), Button(o.PlusField()))
	}
}

func (o *OptionalBranch) toggle(b *Block) *Input {
	toggle := b.Input(o.toggleName())
	if toggle == nil {
		o.Init(b)
		toggle = b.Input(o.toggleName())
	}
	return toggle
}

func (o *OptionalBranch) present(b *Block) bool {
	return b.Input(o.input) != nil
}

func (o *OptionalBranch) SaveState(b *Block, state map[string]any) {
	if o.present(b) {
		state[o.key] = true
	}
}

func (o *OptionalBranch) LoadState(b *Block, state map[string]any) error {
	on := false
	if v, ok := state[o.key]; ok {
		on, ok = v.(bool)
		if !ok {
			return fmt.Errorf("%w: %s.%s is %T", ErrBadState, b.Type, o.key, v)
		}
	}
	if on {
		o.OnPlus(b)
	} else {
		o.OnMinus(b)
	}
	return nil
}

func (o *OptionalBranch) OnPlus(b *Block) {
	toggle := o.toggle(b)
	if o.present(b) {
		return
	}
	b.InsertInputBefore(toggle.Name, &Input{
		Name:   o.input,
		Kind:   StatementInput,
		Fields: []*Field{Label(o.label)},
	})
	toggle.Fields = []*Field{Button(o.MinusField())}
}

func (o *OptionalBranch) OnMinus(b *Block) {
	toggle := o.toggle(b)
	if !o.present(b) {
		return
	}
	b.RemoveInput(o.input)
	toggle.Fields = []*Field{Button(o.PlusField())}
}

// OnPlus expands the named optional branch.
func (b *Block) OnPlus(branch string) error {
	m, err := b.mutator(branch)
	if err != nil {
		return err
	}
	m.OnPlus(b)
	return nil
}

// OnMinus collapses the named optional branch.
func (b *Block) OnMinus(branch string) error {
	m, err := b.mutator(branch)
	if err != nil {
		return err
	}
	m.OnMinus(b)
	return nil
}

func (b *Block) mutator(branch string) (Mutator, error) {
	if b.definition != nil {
		if m := b.definition.mutator(branch); m != nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchBranch, b.Type, branch)
}
