package offer_transition_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"marketplace/internal/entities"
	"marketplace/internal/generated/dto"
	"marketplace/internal/handlers/rest/converters"
	"marketplace/internal/handlers/rest/response"
	"marketplace/internal/pkg/middlewares/auth"
)

// PathTemplate переходы, доступные через REST. create идёт через POST /offer.
const PathTemplate = "/offer/{id}/{transition:accept|confirm_pickup|confirm_delivery|complete|cancel|dispute}"

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

	vars := mux.Vars(r)
	offerID := vars["id"]
	kind := entities.TransitionKind(vars["transition"])

	// тело необязательно: accept обходится без него
	var body dto.TransitionRequest
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, h.log, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.service.ApplyTransition(r.Context(), offerID, kind, actor, converters.TransitionPayloadFromDTO(body))
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, converters.TransitionResultToDTO(result))
}
