package cmds

import "os"

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs the process arguments against the global executor.
func Execute() error {
	return GlobalExecutor.Execute(os.Args[1:])
}
