package blocks

import (
	"fmt"
	"slices"
)

type InputKind int

const (
	ValueInput InputKind = iota
	StatementInput
	DummyInput
)

func (k InputKind) String() string {
	switch k {
	case ValueInput:
		return "value"
	case StatementInput:
		return "statement"
	case DummyInput:
		return "dummy"
	}
	return fmt.Sprintf("InputKind(%d)", int(k))
}

type FieldKind int

const (
	LabelField FieldKind = iota
	TextField
	NumberField
	DropdownField
	VariableField
	ButtonField
)

func (k FieldKind) String() string {
	switch k {
	case LabelField:
		return "label"
	case TextField:
		return "text"
	case NumberField:
		return "number"
	case DropdownField:
		return "dropdown"
	case VariableField:
		return "variable"
	case ButtonField:
		return "button"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

type Field struct {
	Name  string
	Kind  FieldKind
	Value string
}

func Label(text string) *Field {
	return &Field{Kind: LabelField, Value: text}
}

func Text(name, value string) *Field {
	return &Field{Name: name, Kind: TextField, Value: value}
}

func Number(name, value string) *Field {
	return &Field{Name: name, Kind: NumberField, Value: value}
}

func Dropdown(name, value string) *Field {
	return &Field{Name: name, Kind: DropdownField, Value: value}
}

// Var is a variable field; its value is a variable ID.
func Var(name string) *Field {
	return &Field{Name: name, Kind: VariableField}
}

func Button(name string) *Field {
	return &Field{Name: name, Kind: ButtonField}
}

type Input struct {
	Name   string
	Kind   InputKind
	Fields []*Field
	Target *Block
}

func (i *Input) Field(name string) *Field {
	for _, f := range i.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

type Block struct {
	ID     string
	Type   string
	Inputs []*Input
	Next   *Block

	parent     *Block
	definition *Definition
	workspace  *Workspace
}

func (b *Block) Definition() *Definition {
	return b.definition
}

// Output reports whether the block is a value block.
func (b *Block) Output() bool {
	return b.definition != nil && b.definition.Output
}

func (b *Block) Parent() *Block {
	return b.parent
}

func (b *Block) Input(name string) *Input {
	for _, input := range b.Inputs {
		if input.Name == name {
			return input
		}
	}
	return nil
}

func (b *Block) inputIndex(name string) int {
	return slices.IndexFunc(b.Inputs, func(input *Input) bool {
		return input.Name == name
	})
}

func (b *Block) appendInput(kind InputKind, name string, fields []*Field) *Input {
	input := &Input{
		Name:   name,
		Kind:   kind,
		Fields: fields,
	}
	b.Inputs = append(b.Inputs, input)
	return input
}

func (b *Block) AppendValueInput(name string, fields ...*Field) *Input {
	return b.appendInput(ValueInput, name, fields)
}

func (b *Block) AppendStatementInput(name string, fields ...*Field) *Input {
	return b.appendInput(StatementInput, name, fields)
}

func (b *Block) AppendDummyInput(name string, fields ...*Field) *Input {
	return b.appendInput(DummyInput, name, fields)
}

// InsertInputBefore inserts input before the input named before, or appends it
// when there is no such input.
func (b *Block) InsertInputBefore(before string, input *Input) {
	index := b.inputIndex(before)
	if index == -1 {
		b.Inputs = append(b.Inputs, input)
		return
	}
	b.Inputs = slices.Insert(b.Inputs, index, input)
}

// RemoveInput removes the named input. A connected block is detached and
// bumped to the workspace top level. It returns the detached block, if any.
func (b *Block) RemoveInput(name string) *Block {
	index := b.inputIndex(name)
	if index == -1 {
		return nil
	}
	input := b.Inputs[index]
	b.Inputs = slices.Delete(b.Inputs, index, index+1)
	target := input.Target
	if target != nil {
		input.Target = nil
		target.parent = nil
		if b.workspace != nil {
			b.workspace.TopBlocks = append(b.workspace.TopBlocks, target)
		}
	}
	return target
}

func (b *Block) Field(name string) *Field {
	for _, input := range b.Inputs {
		if f := input.Field(name); f != nil {
			return f
		}
	}
	return nil
}

func (b *Block) FieldValue(name string) string {
	if f := b.Field(name); f != nil {
		return f.Value
	}
	return ""
}

func (b *Block) SetFieldValue(name, value string) error {
	f := b.Field(name)
	if f == nil {
		return fmt.Errorf("%w: %s.%s", ErrNoSuchField, b.Type, name)
	}
	f.Value = value
	return nil
}

// Target returns the block connected to the named input.
func (b *Block) Target(name string) *Block {
	if input := b.Input(name); input != nil {
		return input.Target
	}
	return nil
}

func (b *Block) detach(child *Block) {
	if child.parent != nil {
		p := child.parent
		for _, input := range p.Inputs {
			if input.Target == child {
				input.Target = nil
			}
		}
		if p.Next == child {
			p.Next = nil
		}
		child.parent = nil
	}
	if b.workspace != nil {
		b.workspace.removeTop(child)
	}
}

// Connect plugs child into the named value or statement input.
func (b *Block) Connect(name string, child *Block) error {
	input := b.Input(name)
	if input == nil {
		return fmt.Errorf("%w: %s.%s", ErrNoSuchInput, b.Type, name)
	}
	if input.Kind == DummyInput {
		return fmt.Errorf("%w: %s.%s is a dummy input", ErrNoSuchInput, b.Type, name)
	}
	if input.Kind == ValueInput && !child.Output() {
		return fmt.Errorf("%w: %s is not a value block", ErrBadConnection, child.Type)
	}
	if input.Kind == StatementInput && child.Output() {
		return fmt.Errorf("%w: %s is a value block", ErrBadConnection, child.Type)
	}
	b.detach(child)
	input.Target = child
	child.parent = b
	return nil
}

// SetNext chains child after b.
func (b *Block) SetNext(child *Block) error {
	if b.Output() || child.Output() {
		return fmt.Errorf("%w: %s -> %s", ErrBadConnection, b.Type, child.Type)
	}
	b.detach(child)
	b.Next = child
	child.parent = b
	return nil
}

// Descendants returns b and every block reachable from it, depth first.
func (b *Block) Descendants() []*Block {
	var ret []*Block
	var walk func(*Block)
	walk = func(block *Block) {
		for ; block != nil; block = block.Next {
			ret = append(ret, block)
			for _, input := range block.Inputs {
				if input.Target != nil {
					walk(input.Target)
				}
			}
		}
	}
	walk(b)
	return ret
}
