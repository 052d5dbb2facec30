package offers_available_get

import (
	"net/http"
	"strconv"

	"marketplace/internal/handlers/rest/converters"
	"marketplace/internal/handlers/rest/response"
	"marketplace/internal/pkg/middlewares/auth"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		response.Unauthenticated(w, h.log)
		return
	}

	limit, err := parseUint(r.URL.Query().Get("limit"))
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := parseUint(r.URL.Query().Get("offset"))
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid offset")
		return
	}

	offers, err := h.service.GetAvailableOffers(r.Context(), actor, limit, offset)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, converters.OffersToDTO(offers))
}

// parseUint пустое значение означает 0, сервис подставит умолчание.
func parseUint(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
