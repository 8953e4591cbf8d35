package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/taiblock/blocks"
	"github.com/reusee/taiblock/sandbox"
	"go.starlark.net/syntax"
)

var (
	ErrNoEmitter       = errors.New("no emitter for block type")
	ErrUnknownVariable = errors.New("unknown variable")
)

// Emitter returns the code of one block. Statement emitters return OrderNone.
type Emitter func(g *Generator, b *blocks.Block) (code string, order Order, err error)

// Generator compiles a workspace into a program. It is not safe for
// concurrent use.
type Generator struct {
	// StatementPrefix and StatementSuffix wrap the code of every statement
	// block. %1 is replaced by the quoted block ID.
	StatementPrefix string
	StatementSuffix string
	Indent          string

	emitters map[string]Emitter

	names     *NameDB
	variables map[string]blocks.Variable
	declared  map[string]bool
}

func New() *Generator {
	g := &Generator{
		Indent:   "    ",
		emitters: make(map[string]Emitter),
	}
	registerStandard(g)
	registerBehaviors(g)
	return g
}

func (g *Generator) Register(typ string, emitter Emitter) {
	g.emitters[typ] = emitter
}

// WorkspaceToCode generates ws with the variables it uses.
func (g *Generator) WorkspaceToCode(ws *blocks.Workspace) (string, error) {
	used, err := UsedVariables(ws)
	if err != nil {
		return "", err
	}
	return g.Generate(ws, used, DeveloperVariables(ws))
}

// Generate emits the preamble declaring developer and used variables in the
// store, followed by the code of every top block.
func (g *Generator) Generate(ws *blocks.Workspace, used []blocks.Variable, developer []string) (string, error) {
	g.names = NewNameDB(append(append([]string(nil), Reserved...), sandbox.Globals...)...)
	g.variables = make(map[string]blocks.Variable)
	g.declared = make(map[string]bool)
	for _, v := range ws.Variables {
		g.variables[v.ID] = v
	}
	for _, v := range used {
		g.variables[v.ID] = v
	}

	preamble := new(strings.Builder)
	declare := func(ident string) {
		if g.declared[ident] {
			return
		}
		g.declared[ident] = true
		fmt.Fprintf(preamble, "%s.declare(%s, None)\n", sandbox.GlobalStore, quote(ident))
	}
	for _, name := range developer {
		declare(g.DeveloperVariableName(name))
	}
	for _, v := range used {
		declare(g.names.Name(v.Name, "variable"))
	}

	body := new(strings.Builder)
	for _, top := range ws.TopBlocks {
		if top.Output() {
			code, _, err := g.emit(top)
			if err != nil {
				return "", err
			}
			body.WriteString(code)
			body.WriteString("\n")
			continue
		}
		code, err := g.chain(top)
		if err != nil {
			return "", err
		}
		body.WriteString(code)
	}

	if preamble.Len() > 0 && body.Len() > 0 {
		preamble.WriteString("\n")
	}
	return preamble.String() + body.String(), nil
}

func (g *Generator) emit(b *blocks.Block) (string, Order, error) {
	emitter, ok := g.emitters[b.Type]
	if !ok {
		return "", OrderNone, fmt.Errorf("%w: %s", ErrNoEmitter, b.Type)
	}
	code, order, err := emitter(g, b)
	if err != nil {
		return "", OrderNone, fmt.Errorf("block %s (%s): %w", b.ID, b.Type, err)
	}
	return code, order, nil
}

// chain emits b and the blocks following it.
func (g *Generator) chain(b *blocks.Block) (string, error) {
	buf := new(strings.Builder)
	for ; b != nil; b = b.Next {
		code, _, err := g.emit(b)
		if err != nil {
			return "", err
		}
		buf.WriteString(g.hook(g.StatementPrefix, b))
		buf.WriteString(code)
		buf.WriteString(g.hook(g.StatementSuffix, b))
	}
	return buf.String(), nil
}

func (g *Generator) hook(template string, b *blocks.Block) string {
	if template == "" {
		return ""
	}
	code := strings.ReplaceAll(template, "%1", quote(b.ID))
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return code
}

// ValueToCode emits the block connected to the named input, parenthesized
// when it binds looser than outer. An empty input yields "".
func (g *Generator) ValueToCode(b *blocks.Block, name string, outer Order) (string, error) {
	target := b.Target(name)
	if target == nil {
		return "", nil
	}
	code, inner, err := g.emit(target)
	if err != nil {
		return "", err
	}
	if code != "" && needsParens(outer, inner) {
		code = "(" + code + ")"
	}
	return code, nil
}

// ValueOr is ValueToCode with a default for empty inputs.
func (g *Generator) ValueOr(b *blocks.Block, name string, outer Order, def string) (string, error) {
	code, err := g.ValueToCode(b, name, outer)
	if err != nil {
		return "", err
	}
	if code == "" {
		return def, nil
	}
	return code, nil
}

// StatementToCode emits the statements connected to the named input,
// indented. An empty input yields "".
func (g *Generator) StatementToCode(b *blocks.Block, name string) (string, error) {
	target := b.Target(name)
	if target == nil {
		return "", nil
	}
	code, err := g.chain(target)
	if err != nil {
		return "", err
	}
	return g.indent(code), nil
}

// Body is StatementToCode that never returns an empty suite.
func (g *Generator) Body(b *blocks.Block, name string) (string, error) {
	code, err := g.StatementToCode(b, name)
	if err != nil {
		return "", err
	}
	if code == "" {
		return g.Indent + "pass\n", nil
	}
	return code, nil
}

func (g *Generator) indent(code string) string {
	lines := strings.SplitAfter(code, "\n")
	buf := new(strings.Builder)
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			buf.WriteString(g.Indent)
		}
		buf.WriteString(line)
	}
	return buf.String()
}

// VariableName returns the identifier of the variable with the given ID.
func (g *Generator) VariableName(id string) (string, error) {
	v, ok := g.variables[id]
	if !ok {
		return "", unknownVariable(id)
	}
	return g.names.Name(v.Name, "variable"), nil
}

func (g *Generator) DeveloperVariableName(name string) string {
	return g.names.Name(name, "developer")
}

// Reactive reports whether ident is declared in the store.
func (g *Generator) Reactive(ident string) bool {
	return g.declared[ident]
}

// DistinctName allocates a fresh identifier, for handlers and loop counters.
func (g *Generator) DistinctName(base string) string {
	return g.names.Distinct(base, "function")
}

func unknownVariable(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownVariable, id)
}

func quote(s string) string {
	return syntax.Quote(s, false)
}
