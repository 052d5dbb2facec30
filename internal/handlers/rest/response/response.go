package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace/internal/generated/dto"
	"marketplace/internal/service/authorization"
	"marketplace/internal/service/offer"
	"marketplace/internal/service/rider"
	"marketplace/internal/service/transition"
	"marketplace/pkg/logger"
)

const (
	msgForbidden       = "forbidden"
	msgUnauthenticated = "unauthenticated"
	msgInternal        = "internal error"
	msgNoLongerOpen    = "offer no longer available"
	msgModified        = "offer was modified, re-fetch and retry if still applicable"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

func JSON(w http.ResponseWriter, log handlerLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func Error(w http.ResponseWriter, log handlerLogger, status int, message string) {
	JSON(w, log, status, dto.Error{Error: message})
}

func Unauthenticated(w http.ResponseWriter, log handlerLogger) {
	Error(w, log, http.StatusUnauthorized, msgUnauthenticated)
}

// ServiceError переводит ошибку сервиса в HTTP ответ. Причина отказа в
// доступе наружу не уходит, тело у 403 всегда одинаковое.
func ServiceError(w http.ResponseWriter, log handlerLogger, err error) {
	switch {
	case errors.Is(err, offer.ErrOfferNotFound),
		errors.Is(err, rider.ErrRiderNotFound):
		Error(w, log, http.StatusNotFound, "not found")

	case errors.Is(err, authorization.ErrForbidden):
		Error(w, log, http.StatusForbidden, msgForbidden)

	case errors.Is(err, offer.ErrOfferNoLongerAvailable):
		Error(w, log, http.StatusConflict, msgNoLongerOpen)

	case errors.Is(err, offer.ErrConcurrentModification):
		Error(w, log, http.StatusConflict, msgModified)

	case errors.Is(err, transition.ErrTerminalState),
		errors.Is(err, transition.ErrInvalidTransition),
		errors.Is(err, offer.ErrConflict),
		errors.Is(err, rider.ErrConflict):
		Error(w, log, http.StatusConflict, err.Error())

	case errors.Is(err, offer.ErrValidation),
		errors.Is(err, rider.ErrMissingRequiredFields),
		errors.Is(err, rider.ErrInvalidRiderID),
		errors.Is(err, rider.ErrInvalidName),
		errors.Is(err, rider.ErrInvalidPhone),
		errors.Is(err, rider.ErrInvalidStatus),
		errors.Is(err, rider.ErrInvalidTransport):
		Error(w, log, http.StatusBadRequest, err.Error())

	default:
		log.With(
			logger.NewField("error", err),
		).Error("unexpected service error")
		Error(w, log, http.StatusInternalServerError, msgInternal)
	}
}
