package sandbox

import (
	"errors"
	"fmt"
	"maps"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var FileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// ErrCapturedRebind is returned for a top-level statement that rebinds a global
// read by a previously defined function. Each unit runs as its own module, so
// a function keeps seeing the globals as they were when its unit ran.
var ErrCapturedRebind = errors.New("rebinding a global read by a function")

// Interpreter executes a program one unit at a time.
// A unit is a top-level statement or a queued call of a script function.
type Interpreter struct {
	name     string
	thread   *starlark.Thread
	globals  starlark.StringDict
	units    []unit
	maxSteps uint64
	print    func(msg string)

	// names bound by checked statements
	bound map[string]bool
	// globals read inside function bodies
	captured map[string]bool
}

type unit struct {
	stmt syntax.Stmt
	fn   starlark.Callable
	args starlark.Tuple
}

type Option func(*Interpreter)

// WithMaxSteps bounds the computation steps of a single unit. Zero means no bound.
func WithMaxSteps(n uint64) Option {
	return func(i *Interpreter) {
		i.maxSteps = n
	}
}

func WithPrint(fn func(msg string)) Option {
	return func(i *Interpreter) {
		i.print = fn
	}
}

type InitFunc func(interp *Interpreter, globals starlark.StringDict) error

// New parses src and runs init to populate the globals, then checks the
// program against them. Nothing is executed until Step.
func New(name string, src string, init InitFunc, options ...Option) (*Interpreter, error) {
	interp := &Interpreter{
		name:     name,
		globals:  make(starlark.StringDict),
		print:    func(string) {},
		bound:    make(map[string]bool),
		captured: make(map[string]bool),
	}
	for _, opt := range options {
		opt(interp)
	}
	interp.thread = &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			interp.print(msg)
		},
	}

	units, err := interp.parse(src)
	if err != nil {
		return nil, err
	}
	interp.units = units

	if init != nil {
		if err := init(interp, interp.globals); err != nil {
			return nil, err
		}
	}

	if err := interp.check(src); err != nil {
		return nil, err
	}

	return interp, nil
}

func (i *Interpreter) parse(src string) ([]unit, error) {
	file, err := FileOptions.Parse(i.name, src, 0)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	units := make([]unit, 0, len(file.Stmts))
	for _, stmt := range file.Stmts {
		units = append(units, unit{
			stmt: stmt,
		})
	}
	return units, nil
}

// Step executes the next unit and reports whether more units are pending.
func (i *Interpreter) Step() (more bool, err error) {
	if len(i.units) == 0 {
		return false, nil
	}
	u := i.units[0]
	i.units[0] = unit{}
	i.units = i.units[1:]

	if i.maxSteps > 0 {
		i.thread.SetMaxExecutionSteps(i.thread.ExecutionSteps() + i.maxSteps)
	}

	if u.fn != nil {
		_, err = starlark.Call(i.thread, u.fn, u.args, nil)
	} else {
		err = starlark.ExecREPLChunk(&syntax.File{
			Path:    i.name,
			Stmts:   []syntax.Stmt{u.stmt},
			Options: FileOptions,
		}, i.thread, i.globals)
	}
	if err != nil {
		return len(i.units) > 0, fmt.Errorf("%s: %w", i.name, err)
	}

	return len(i.units) > 0, nil
}

// Append parses and checks src and queues its statements after the pending units.
func (i *Interpreter) Append(src string) error {
	units, err := i.parse(src)
	if err != nil {
		return err
	}
	if err := i.check(src); err != nil {
		return err
	}
	i.units = append(i.units, units...)
	return nil
}

// check resolves the statements of src one by one, as Step will run them.
// References to names no statement binds fail here instead of at run time,
// and so does rebinding a global some function body reads. The check works
// on its own parse, since a resolved tree cannot be resolved again.
func (i *Interpreter) check(src string) error {
	file, err := FileOptions.Parse(i.name, src, 0)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	bound := maps.Clone(i.bound)
	captured := maps.Clone(i.captured)
	isGlobal := func(name string) bool {
		return bound[name] || i.globals.Has(name)
	}
	isPredeclared := func(string) bool {
		return false
	}
	for _, stmt := range file.Stmts {
		names := boundNames(stmt, nil)
		for _, name := range names {
			if captured[name] {
				return fmt.Errorf("%s: %s: %w", syntax.Start(stmt), name, ErrCapturedRebind)
			}
		}
		if err := resolve.REPLChunk(&syntax.File{
			Path:    i.name,
			Stmts:   []syntax.Stmt{stmt},
			Options: FileOptions,
		}, isGlobal, isPredeclared, starlark.Universe.Has); err != nil {
			return fmt.Errorf("resolve: %w", err)
		}
		for _, name := range capturedGlobals(stmt) {
			captured[name] = true
		}
		for _, name := range names {
			bound[name] = true
		}
	}
	i.bound = bound
	i.captured = captured
	return nil
}

// boundNames appends the globals a top-level statement binds.
func boundNames(stmt syntax.Stmt, names []string) []string {
	switch stmt := stmt.(type) {
	case *syntax.AssignStmt:
		names = targetNames(stmt.LHS, names)
	case *syntax.DefStmt:
		names = append(names, stmt.Name.Name)
	case *syntax.LoadStmt:
		for _, id := range stmt.To {
			names = append(names, id.Name)
		}
	case *syntax.ForStmt:
		names = targetNames(stmt.Vars, names)
		for _, s := range stmt.Body {
			names = boundNames(s, names)
		}
	case *syntax.WhileStmt:
		for _, s := range stmt.Body {
			names = boundNames(s, names)
		}
	case *syntax.IfStmt:
		for _, s := range stmt.True {
			names = boundNames(s, names)
		}
		for _, s := range stmt.False {
			names = boundNames(s, names)
		}
	}
	return names
}

func targetNames(expr syntax.Expr, names []string) []string {
	switch expr := expr.(type) {
	case *syntax.Ident:
		names = append(names, expr.Name)
	case *syntax.ParenExpr:
		names = targetNames(expr.X, names)
	case *syntax.TupleExpr:
		for _, e := range expr.List {
			names = targetNames(e, names)
		}
	case *syntax.ListExpr:
		for _, e := range expr.List {
			names = targetNames(e, names)
		}
	}
	return names
}

// capturedGlobals returns the globals read inside the function bodies of a
// resolved statement.
func capturedGlobals(stmt syntax.Stmt) (names []string) {
	collect := func(n syntax.Node) bool {
		if id, ok := n.(*syntax.Ident); ok {
			if b, ok := id.Binding.(*resolve.Binding); ok && b.Scope == resolve.Global {
				names = append(names, id.Name)
			}
		}
		return true
	}
	syntax.Walk(stmt, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.DefStmt:
			for _, s := range n.Body {
				syntax.Walk(s, collect)
			}
			return false
		case *syntax.LambdaExpr:
			syntax.Walk(n.Body, collect)
			return false
		}
		return true
	})
	return names
}

// AppendCall queues a call of fn.
func (i *Interpreter) AppendCall(fn starlark.Callable, args ...starlark.Value) {
	i.units = append(i.units, unit{
		fn:   fn,
		args: starlark.Tuple(args),
	})
}

// Call invokes fn immediately on the interpreter thread.
func (i *Interpreter) Call(fn starlark.Callable, args ...starlark.Value) (starlark.Value, error) {
	return starlark.Call(i.thread, fn, starlark.Tuple(args), nil)
}

// Cancel makes the running and all subsequent computations fail.
func (i *Interpreter) Cancel(reason string) {
	i.thread.Cancel(reason)
}

func (i *Interpreter) Pending() int {
	return len(i.units)
}

func (i *Interpreter) Name() string {
	return i.name
}

func (i *Interpreter) Thread() *starlark.Thread {
	return i.thread
}

func (i *Interpreter) Globals() starlark.StringDict {
	return i.globals
}
