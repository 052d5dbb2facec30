package transition

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrTerminalState     = errors.New("offer is in a terminal state")
)
