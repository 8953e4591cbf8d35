package behaviors

import (
	"github.com/reusee/taiblock/bridges"
	"github.com/reusee/taiblock/configs"
	"github.com/reusee/taiblock/vars"
)

// ConfigSchema is the CUE schema of the behaviors configuration.
const ConfigSchema = `
behaviors?: {
	maxStepsPerUnit?: int & >=0
	statementPrefix?: string
	statementSuffix?: string
	cursor?: string
}
`

type Config struct {
	// MaxStepsPerUnit bounds the computation of one statement or callback. Zero means unbounded.
	MaxStepsPerUnit int    `json:"maxStepsPerUnit"`
	StatementPrefix string `json:"statementPrefix"`
	StatementSuffix string `json:"statementSuffix"`
	Cursor          string `json:"cursor"`
}

var _ configs.Configurable = Config{}

func (Config) ConfigPath() string {
	return "behaviors"
}

func (c Config) cursor() string {
	return vars.FirstNonZero(c.Cursor, bridges.DefaultCursor)
}

// TracePrefix is a statement prefix reporting every statement to the trace capability.
const TracePrefix = "trace(%1)"
