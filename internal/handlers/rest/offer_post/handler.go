package offer_post

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

	var body dto.OfferCreate
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	offer, err := h.service.CreateOffer(r.Context(), actor, converters.OfferDraftFromDTO(body))
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, converters.OfferToDTO(offer))
}
