package modes

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/scheduler"
)

type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (m ModuleForTest) Mode() Mode {
	return ModeDevelopment
}

// ManualLoop lets tests drive ticks synchronously.
func (m ModuleForTest) ManualLoop() *scheduler.ManualLoop {
	return scheduler.NewManualLoop()
}

func (m ModuleForTest) Deferrer(
	loop *scheduler.ManualLoop,
) scheduler.Deferrer {
	return loop
}
