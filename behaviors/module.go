package behaviors

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/configs"
	"github.com/reusee/taiblock/headless"
	"github.com/reusee/taiblock/logs"
	"github.com/reusee/taiblock/reactive"
	"github.com/reusee/taiblock/scheduler"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
	Bridges bridges.Module
}

func (Module) Runtime() *reactive.Runtime {
	return reactive.NewRuntime()
}

// Headless is the in-memory host. Fork the scope with another bridges.Host to
// drive a different environment.
func (Module) Headless(
	rt *reactive.Runtime,
) *headless.Host {
	return headless.New(rt)
}

func (Module) Host(
	host *headless.Host,
) bridges.Host {
	return host.Bridges()
}

// Config is the default configuration. Fork the scope with configs.Fork to load it.
func (Module) Config() Config {
	return Config{}
}

func (Module) Coordinator(
	rt *reactive.Runtime,
	host bridges.Host,
	deferrer scheduler.Deferrer,
	diag bridges.Diagnostics,
	logger logs.Logger,
	newSpan logs.NewSpan,
	config Config,
) *Coordinator {
	return NewCoordinator(rt, host, deferrer, diag, logger, newSpan, config)
}
