package blocks

import "errors"

var (
	ErrUnknownType   = errors.New("unknown block type")
	ErrDuplicateType = errors.New("duplicated block type")
	ErrNoSuchInput   = errors.New("no such input")
	ErrNoSuchField   = errors.New("no such field")
	ErrNoSuchBranch  = errors.New("no such branch")
	ErrBadConnection = errors.New("bad connection")
	ErrBadState      = errors.New("bad extra state")
)
