package bridges

import "github.com/reusee/taiblock/logs"

type MissKind string

const (
	MissComponent MissKind = "component"
	MissElement   MissKind = "element"
	MissProperty  MissKind = "property"
	MissSurface   MissKind = "surface"
	MissPlayer    MissKind = "player"
)

// Miss describes a lookup that found nothing. Misses are not faults.
type Miss struct {
	Kind MissKind
	Type string
	ID   string
	Name string
}

type Diagnostics interface {
	LookupMiss(miss Miss)
}

type nopDiagnostics struct{}

func (nopDiagnostics) LookupMiss(Miss) {}

var NopDiagnostics Diagnostics = nopDiagnostics{}

type logDiagnostics struct {
	logger logs.Logger
}

func (l logDiagnostics) LookupMiss(miss Miss) {
	l.logger.Warn("lookup miss",
		"kind", miss.Kind,
		"type", miss.Type,
		"id", miss.ID,
		"name", miss.Name,
	)
}

// LogDiagnostics reports misses as warnings.
func LogDiagnostics(logger logs.Logger) Diagnostics {
	return logDiagnostics{
		logger: logger,
	}
}

// DiagnosticsFunc adapts a function.
type DiagnosticsFunc func(miss Miss)

func (d DiagnosticsFunc) LookupMiss(miss Miss) {
	d(miss)
}
