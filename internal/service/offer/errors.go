package offer

import (
	"errors"
	"fmt"

	"marketplace/internal/service/transition"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrInvalidOfferID           = fmt.Errorf("%w: invalid offer id", ErrValidation)
	ErrMissingRequiredFields    = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrInvalidDescription       = fmt.Errorf("%w: invalid description", ErrValidation)
	ErrInvalidPackageSize       = fmt.Errorf("%w: invalid package size", ErrValidation)
	ErrInvalidPrice             = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrInvalidCurrency          = fmt.Errorf("%w: invalid currency", ErrValidation)
	ErrInvalidAddress           = fmt.Errorf("%w: invalid address", ErrValidation)
	ErrMissingLocation          = fmt.Errorf("%w: location is required", ErrValidation)
	ErrInvalidLocation          = fmt.Errorf("%w: invalid location", ErrValidation)
	ErrInvalidPhotoURL          = fmt.Errorf("%w: invalid photo url", ErrValidation)
	ErrInvalidConfirmationCode  = fmt.Errorf("%w: invalid confirmation code", ErrValidation)
	ErrMissingConfirmationCode  = fmt.Errorf("%w: confirmation code is required", ErrValidation)
	ErrConfirmationCodeMismatch = fmt.Errorf("%w: confirmation code mismatch", ErrValidation)
	ErrMissingDisputeReason     = fmt.Errorf("%w: dispute reason is required", ErrValidation)
	ErrPaymentNotSettled        = fmt.Errorf("%w: payment reference or explicit waiver is required", ErrValidation)
	ErrMissingWaiverReason      = fmt.Errorf("%w: payment waiver requires a reason", ErrValidation)
	ErrInvalidPagination        = fmt.Errorf("%w: invalid pagination", ErrValidation)

	ErrOfferNotFound = errors.New("offer not found")
	ErrConflict      = errors.New("offer already exists")

	ErrConcurrentModification = errors.New("offer was modified concurrently")
	ErrOfferNoLongerAvailable = fmt.Errorf("%w: offer no longer available", ErrConcurrentModification)

	ErrRiderNotAvailable = fmt.Errorf("%w: rider is not available", transition.ErrInvalidTransition)
)
