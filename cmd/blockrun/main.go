package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/taiblock/cmds"
)

type flags struct {
	file    *string
	code    *string
	configs *[]string
	print   *bool
	tap     *bool
	steps   []Step
}

func defineFlags(e *cmds.Executor) *flags {
	f := &flags{
		file:    cmds.VarOf[string](e, "file"),
		code:    cmds.VarOf[string](e, "code"),
		configs: cmds.CollectOf[string](e, "config"),
		print:   cmds.SwitchOf(e, "print"),
		tap:     cmds.SwitchOf(e, "tap"),
	}
	e.Define("mount", cmds.Func(func(typ, id string) {
		f.steps = append(f.steps, MountStep(typ, id))
	}).Desc("mount a component"))
	e.Define("event", cmds.Func(func(typ, id, event string) {
		f.steps = append(f.steps, EventStep(typ, id, event))
	}).Desc("fire an event on a component"))
	e.Define("key", cmds.Func(func(key string) {
		f.steps = append(f.steps, KeyStep(key))
	}).Desc("press and release a key"))
	e.Define("time", cmds.Func(func(seconds float64) {
		f.steps = append(f.steps, TimeStep(seconds))
	}).Desc("advance media time"))
	return f
}

func (f *flags) plan(stdout io.Writer) Plan {
	plan := Plan{
		File:  *f.file,
		Code:  *f.code,
		Tap:   *f.tap,
		Steps: f.steps,
	}
	if *f.print {
		plan.Print = stdout
	}
	return plan
}

var globalFlags = defineFlags(cmds.GlobalExecutor)

func main() {
	ce(cmds.Execute())

	scope, err := newScope(*globalFlags.configs)
	ce(err)

	plan := globalFlags.plan(os.Stdout)
	scope.Call(func(
		play Play,
	) {
		ce(play(context.Background(), plan))
	})
}

func ce(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
