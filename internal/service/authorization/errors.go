package authorization

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden = errors.New("forbidden")

	// ErrWrongRole и ErrNotOwner различаются только в логах, наружу уходит ErrForbidden.
	ErrWrongRole = fmt.Errorf("%w: wrong role", ErrForbidden)
	ErrNotOwner  = fmt.Errorf("%w: not the owner or assignee", ErrForbidden)
)
