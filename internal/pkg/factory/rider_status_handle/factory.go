package rider_status_handle

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/entities"
	"marketplace/internal/service/rider_status"
)

type StatusHandlerFactory struct {
	presenceService PresenceService
}

func NewStatusHandlerFactory(presenceService PresenceService) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		presenceService: presenceService,
	}
}

func (f *StatusHandlerFactory) GetHandler(eventType entities.RiderEventType) (rider_status.ExecuteFn, error) {
	switch eventType {
	case entities.RiderWentOnline:
		return f.withStatus(entities.RiderAvailable), nil
	case entities.RiderTookOrder:
		return f.withStatus(entities.RiderBusy), nil
	case entities.RiderWentOffline:
		return f.withStatus(entities.RiderPaused), nil
	case entities.RiderHeartbeat:
		return f.heartbeatHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", rider_status.ErrUndefinedEvent, eventType)
	}
}

func (f *StatusHandlerFactory) withStatus(status entities.RiderStatusType) rider_status.ExecuteFn {
	return func(ctx context.Context, riderID string, seenAt time.Time) error {
		err := f.presenceService.SetPresence(ctx, riderID, &status, seenAt)
		if err != nil {
			return fmt.Errorf("set rider %s %s: %w", riderID, status, err)
		}
		return nil
	}
}

// heartbeatHandler продлевает присутствие, статус не трогает.
func (f *StatusHandlerFactory) heartbeatHandler(ctx context.Context, riderID string, seenAt time.Time) error {
	err := f.presenceService.SetPresence(ctx, riderID, nil, seenAt)
	if err != nil {
		return fmt.Errorf("extend rider %s presence: %w", riderID, err)
	}
	return nil
}
