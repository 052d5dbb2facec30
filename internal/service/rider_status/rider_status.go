package rider_status

import (
	"context"
	"fmt"
	"strings"

	"marketplace/internal/entities"
)

type Service struct {
	riderService  RiderService
	statusFactory HandlerFactory
}

func New(riderService RiderService, statusFactory HandlerFactory) *Service {
	return &Service{
		riderService:  riderService,
		statusFactory: statusFactory,
	}
}

// ProcessRiderStatusChange применяет событие присутствия и возвращает
// актуальный профиль курьера.
func (s *Service) ProcessRiderStatusChange(ctx context.Context, event entities.RiderStatusEvent) (*entities.Rider, error) {
	if strings.TrimSpace(event.RiderID) == "" || event.Type == "" {
		return nil, fmt.Errorf("%w: rider id and event type are required", ErrInvalidEvent)
	}

	executeFn, err := s.statusFactory.GetHandler(event.Type)
	if err != nil {
		return nil, err
	}

	if err := executeFn(ctx, event.RiderID, event.OccurredAt); err != nil {
		return nil, err
	}

	rider, err := s.riderService.GetRider(ctx, event.RiderID)
	if err != nil {
		return nil, fmt.Errorf("get rider after %s event: %w", event.Type, err)
	}

	return rider, nil
}
