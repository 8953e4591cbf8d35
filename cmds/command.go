package cmds

import (
	"fmt"
	"reflect"
)

// Command is a named action. A command with Func consumes one argument per
// parameter; a command with Subs brings its subcommands into scope.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

var errorType = reflect.TypeFor[error]()

// Func wraps fn, which must return nothing or an error. Pointer parameters are
// optional trailing arguments.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}
	fnType := fnValue.Type()
	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %d", fnType.NumOut()))
	}
	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

// call runs the function of c with arguments taken from args and returns the rest.
func (c *Command) call(args []string) ([]string, error) {
	fnType := c.Func.Type()
	callArgs := make([]reflect.Value, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		value, err := parseArg(fnType.In(i), args)
		if err != nil {
			return args, fmt.Errorf("argument %d: %w", i+1, err)
		}
		if len(args) > 0 {
			args = args[1:]
		}
		callArgs = append(callArgs, value)
	}
	rets := c.Func.Call(callArgs)
	if len(rets) > 0 && !rets[0].IsNil() {
		return args, rets[0].Interface().(error)
	}
	return args, nil
}
