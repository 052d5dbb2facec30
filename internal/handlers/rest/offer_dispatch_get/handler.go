package offer_dispatch_get

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
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

	vars := mux.Vars(r)
	version, err := strconv.ParseInt(vars["version"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, "invalid version")
		return
	}

	records, err := h.service.GetDispatchStatus(r.Context(), actor, vars["id"], version)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, converters.DispatchRecordsToDTO(records))
}
