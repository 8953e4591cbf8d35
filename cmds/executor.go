package cmds

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/reusee/taiblock/vars"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("expecting argument, got nothing")
)

type Executor struct {
	commands map[string]*Command
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}

	usage := Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help")
	ret.Define("-h", usage)

	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

// Execute runs commands from args in order. Subcommands stay in scope for the
// rest of args.
func (p *Executor) Execute(args []string) error {
	commands := p.commands
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := commands[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}

		if command.Func.IsValid() {
			var err error
			args, err = command.call(args)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}

		if len(command.Subs) > 0 {
			commands = maps.Clone(commands)
			for subname, cmd := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = cmd
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

func parseArg(t reflect.Type, args []string) (ret reflect.Value, err error) {
	if t.Kind() == reflect.Pointer {
		if len(args) == 0 {
			// optional
			return reflect.New(t.Elem()), nil
		}
		elem, err := parseArg(t.Elem(), args)
		if err != nil {
			return ret, err
		}
		return elem.Addr(), nil
	}
	if len(args) == 0 {
		return ret, ErrMissingArgument
	}

	str := args[0]
	ret = reflect.New(t).Elem()
	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, t.Bits())
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)

	case reflect.String:
		ret.SetString(str)

	default:
		return ret, fmt.Errorf("unsupported type: %v", t)
	}

	return ret, nil
}
