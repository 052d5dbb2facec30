package rider_status

import "errors"

var (
	ErrUndefinedEvent = errors.New("undefined rider event")
	ErrInvalidEvent   = errors.New("invalid rider event")
)
