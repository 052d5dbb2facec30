package rider_put

import (
	"encoding/json"
	"net/http"

	"marketplace/internal/generated/dto"
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

	var body dto.RiderUpdate
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rider, err := h.service.UpdateRider(r.Context(), actor, converters.RiderUpdateFromDTO(body))
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, converters.RiderToDTO(rider))
}
