package bridges

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taiblock/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

func (Module) Diagnostics() Diagnostics {
	return NopDiagnostics
}
