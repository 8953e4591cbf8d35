package modes

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/scheduler"
)

type ModuleForProduction struct {
	dscope.Module
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

func (ModuleForProduction) Mode() Mode {
	return ModeProduction
}

func (ModuleForProduction) Loop() *scheduler.Loop {
	return scheduler.NewLoop()
}

func (ModuleForProduction) Deferrer(
	loop *scheduler.Loop,
) scheduler.Deferrer {
	return loop
}
