package offer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"marketplace/internal/service/authorization"
	"marketplace/internal/service/transition"
)

var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "offer_transitions_total",
		Help: "Total number of offer transition attempts by outcome",
	},
	[]string{"transition", "result"},
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrOfferNotFound):
		return "not_found"
	case errors.Is(err, authorization.ErrForbidden):
		return "forbidden"
	case errors.Is(err, transition.ErrTerminalState):
		return "terminal_state"
	case errors.Is(err, transition.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConcurrentModification):
		return "concurrent_modification"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "error"
	}
}
