package rider

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidRiderID        = errors.New("invalid rider id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidPhone          = errors.New("invalid phone")
	ErrInvalidTransport      = errors.New("invalid transport type")
	ErrInvalidPresenceTTL    = errors.New("invalid presence ttl")

	ErrRiderNotFound = errors.New("rider not found")
	ErrConflict      = errors.New("resource already exists")
)
