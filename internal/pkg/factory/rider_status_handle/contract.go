//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_status_handle_test
package rider_status_handle

import (
	"context"
	"time"

	"marketplace/internal/entities"
)

type PresenceService interface {
	SetPresence(ctx context.Context, id string, status *entities.RiderStatusType, seenAt time.Time) error
}
