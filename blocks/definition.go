package blocks

import "fmt"

// Definition declares a block type.
type Definition struct {
	Type string
	// Output marks value blocks.
	Output bool
	// Init builds the base shape of a new block.
	Init func(b *Block)
	// Mutators are applied in order after Init, one per optional branch.
	Mutators []Mutator
	// DeveloperVariables are implicit variables the generated code needs.
	DeveloperVariables []string
}

func (d *Definition) mutator(branch string) Mutator {
	for _, m := range d.Mutators {
		if m.Branch() == branch {
			return m
		}
	}
	return nil
}

type Registry struct {
	definitions map[string]*Definition
	types       []string
}

func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{
		definitions: make(map[string]*Definition),
	}
	for _, def := range defs {
		if err := r.Define(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry contains the standard and behavior block families.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(append(Standard(), Behaviors()...)...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Define(def *Definition) error {
	if _, ok := r.definitions[def.Type]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def.Type)
	}
	r.definitions[def.Type] = def
	r.types = append(r.types, def.Type)
	return nil
}

func (r *Registry) Lookup(typ string) (*Definition, bool) {
	def, ok := r.definitions[typ]
	return def, ok
}

// Types returns the defined types in definition order.
func (r *Registry) Types() []string {
	return append([]string(nil), r.types...)
}

// NewBlock creates a detached block of the given type.
func (r *Registry) NewBlock(typ, id string) (*Block, error) {
	def, ok := r.definitions[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}
	b := &Block{
		ID:         id,
		Type:       typ,
		definition: def,
	}
	if def.Init != nil {
		def.Init(b)
	}
	for _, m := range def.Mutators {
		m.Init(b)
	}
	return b, nil
}
