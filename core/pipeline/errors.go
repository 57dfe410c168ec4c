package pipeline

import "errors"

var (
	ErrNoContextFactory   = errors.New("no context factory provided")
	ErrNilStage           = errors.New("nil pipeline stage")
	ErrNilTerminal        = errors.New("nil terminal handler")
	ErrTerminalInBranch   = errors.New("conditional branch must not define a terminal handler")
	ErrTerminalAlreadySet = errors.New("terminal handler already set")
	ErrInvalidPrefix      = errors.New("map prefix must start with '/' and must not end with '/'")
)
