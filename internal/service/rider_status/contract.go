//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_status_test
package rider_status

import (
	"context"
	"time"

	"marketplace/internal/entities"
)

type RiderService interface {
	GetRider(ctx context.Context, id string) (*entities.Rider, error)
}

type ExecuteFn func(ctx context.Context, riderID string, seenAt time.Time) error

type HandlerFactory interface {
	GetHandler(eventType entities.RiderEventType) (ExecuteFn, error)
}
