package rider_presence_expiry

import (
	"context"
	"time"

	"marketplace/pkg/logger"
)

type Service interface {
	PauseIdleRiders(ctx context.Context, ttl time.Duration) (int64, error)
}

// RiderPresenceExpiry ставит на паузу доступных курьеров,
// от которых не было событий дольше presenceTTL.
type RiderPresenceExpiry struct {
	log         logger.Logger
	service     Service
	interval    time.Duration
	presenceTTL time.Duration
}

func NewRiderPresenceExpiry(log logger.Logger, service Service, interval, presenceTTL time.Duration) *RiderPresenceExpiry {
	return &RiderPresenceExpiry{
		log:         log,
		service:     service,
		interval:    interval,
		presenceTTL: presenceTTL,
	}
}

func (r *RiderPresenceExpiry) TTL() time.Duration {
	return r.interval
}

func (r *RiderPresenceExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	paused, err := r.service.PauseIdleRiders(ctxWithTimeout, r.presenceTTL)

	if paused > 0 {
		r.log.With(
			logger.NewField("paused_riders", paused),
		).Info("rider presence expiry")
	}

	return err
}

func (r *RiderPresenceExpiry) Info() string {
	return "rider presence expiry"
}
