package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/behaviors"
	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/configs"
	"github.com/reusee/taiblock/debugs"
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/modes"
)

type Module struct {
	dscope.Module
	Behaviors behaviors.Module
	Debugs    debugs.Module
}

func newScope(configFiles []string) (dscope.Scope, error) {
	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	).Fork(
		func(logger logs.Logger) bridges.Diagnostics {
			return bridges.LogDiagnostics(logger)
		},
	)
	return configs.Fork(scope, configs.NewLoader(configFiles, behaviors.ConfigSchema))
}
