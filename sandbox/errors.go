package sandbox

import "errors"

var (
	ErrUnsupportedValue  = errors.New("unsupported value")
	ErrMissingCapability = errors.New("missing capability")
)
