package codegen

import (
	"slices"

	"github.com/reusee/taiblock/blocks"
)

// UsedVariables returns the variables referenced by ws, in first reference
// order. Loop counters are included: a handler defined above the loop still
// reads them through the store.
func UsedVariables(ws *blocks.Workspace) ([]blocks.Variable, error) {
	var ret []blocks.Variable
	seen := make(map[string]bool)
	for _, b := range ws.AllBlocks() {
		for _, input := range b.Inputs {
			for _, f := range input.Fields {
				if f.Kind != blocks.VariableField || seen[f.Value] {
					continue
				}
				v, ok := ws.Variable(f.Value)
				if !ok {
					return nil, unknownVariable(f.Value)
				}
				seen[f.Value] = true
				ret = append(ret, v)
			}
		}
	}
	return ret, nil
}

// DeveloperVariables returns the implicit variables of every block in ws.
func DeveloperVariables(ws *blocks.Workspace) []string {
	var ret []string
	for _, b := range ws.AllBlocks() {
		def := b.Definition()
		if def == nil {
			continue
		}
		for _, name := range def.DeveloperVariables {
			if !slices.Contains(ret, name) {
				ret = append(ret, name)
			}
		}
	}
	return ret
}
