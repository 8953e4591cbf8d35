package cmds

// VarOf defines name on e to set the returned value, and name followed by a
// dot to reset it.
func VarOf[T any](e *Executor, name string) *T {
	var value T
	e.Define(name, Func(func(v T) {
		value = v
	}))
	e.Define(name+".", Func(func() {
		var zero T
		value = zero
	}))
	return &value
}

// SwitchOf defines name on e to turn the returned flag on, and !name to turn it off.
func SwitchOf(e *Executor, name string) *bool {
	var value bool
	e.Define(name, Func(func() {
		value = true
	}))
	e.Define("!"+name, Func(func() {
		value = false
	}))
	return &value
}

// CollectOf defines name on e to append to the returned list.
func CollectOf[T any](e *Executor, name string) *[]T {
	var value []T
	e.Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}

func Var[T any](name string) *T {
	return VarOf[T](GlobalExecutor, name)
}

func Switch(name string) *bool {
	return SwitchOf(GlobalExecutor, name)
}

func Collect[T any](name string) *[]T {
	return CollectOf[T](GlobalExecutor, name)
}
