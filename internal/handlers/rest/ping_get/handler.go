package ping_get

import (
	"encoding/json"
	"net/http"
	"time"

	"marketplace/internal/generated/dto"
	"marketplace/pkg/logger"
)

const pong = "pong"

type Handler struct {
	log       handlerLogger
	service   string
	startedAt time.Time
}

// New запоминает момент старта, он отдаётся в каждом ответе.
func New(log handlerLogger, service string) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		startedAt: time.Now().UTC(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := pong
	res := dto.PingResponse{
		Message:   &message,
		Service:   &h.service,
		StartedAt: &h.startedAt,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.Error("encode ping response", logger.NewField("error", err))
	}
}
