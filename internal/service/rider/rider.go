package rider

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/entities"
	"marketplace/internal/service/authorization"
)

type Rider struct {
	repository Repository
	now        func() time.Time
}

func New(repository Repository) *Rider {
	return &Rider{
		repository: repository,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// CreateRider регистрирует профиль. Курьер регистрирует только себя,
// администратор может указать любой id.
func (s *Rider) CreateRider(ctx context.Context, actor entities.Actor, riderModify entities.RiderModify) (*entities.Rider, error) {
	switch actor.Role {
	case entities.RoleRider:
		if riderModify.ID != nil && *riderModify.ID != actor.ID {
			return nil, fmt.Errorf("%w: rider can register only itself", authorization.ErrNotOwner)
		}
		id := actor.ID
		riderModify.ID = &id
	case entities.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: %s cannot register riders", authorization.ErrWrongRole, actor.Role)
	}

	if riderModify.ID == nil ||
		riderModify.Name == nil ||
		riderModify.Phone == nil {
		return nil, ErrMissingRequiredFields
	}

	if riderModify.Status == nil {
		status := entities.DefaultStatusType
		riderModify.Status = &status
	}
	if riderModify.TransportType == nil {
		transport := entities.DefaultTransportType
		riderModify.TransportType = &transport
	}

	if !isValidRiderID(*riderModify.ID) {
		return nil, ErrInvalidRiderID
	}
	if !isValidName(*riderModify.Name) {
		return nil, ErrInvalidName
	}
	if !isValidPhone(*riderModify.Phone) {
		return nil, ErrInvalidPhone
	}
	if !isValidStatus(*riderModify.Status) {
		return nil, ErrInvalidStatus
	}
	if !isValidTransport(*riderModify.TransportType) {
		return nil, ErrInvalidTransport
	}

	seenAt := s.now()
	riderModify.LastSeenAt = &seenAt

	rider, err := s.repository.Create(ctx, riderModify)
	if err != nil {
		return nil, fmt.Errorf("create rider: %w", err)
	}

	return rider, nil
}

func (s *Rider) UpdateRider(ctx context.Context, actor entities.Actor, riderModify entities.RiderModify) (*entities.Rider, error) {
	if riderModify.ID == nil {
		return nil, fmt.Errorf("rider id is required: %w", ErrMissingRequiredFields)
	}

	switch actor.Role {
	case entities.RoleRider:
		if *riderModify.ID != actor.ID {
			return nil, fmt.Errorf("%w: rider can update only itself", authorization.ErrNotOwner)
		}
	case entities.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: %s cannot update riders", authorization.ErrWrongRole, actor.Role)
	}

	if riderModify.Name == nil &&
		riderModify.Phone == nil &&
		riderModify.Status == nil &&
		riderModify.TransportType == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}

	if riderModify.Name != nil && !isValidName(*riderModify.Name) {
		return nil, ErrInvalidName
	}
	if riderModify.Phone != nil && !isValidPhone(*riderModify.Phone) {
		return nil, ErrInvalidPhone
	}
	if riderModify.Status != nil && !isValidStatus(*riderModify.Status) {
		return nil, ErrInvalidStatus
	}
	if riderModify.TransportType != nil && !isValidTransport(*riderModify.TransportType) {
		return nil, ErrInvalidTransport
	}

	if riderModify.Status != nil {
		seenAt := s.now()
		riderModify.LastSeenAt = &seenAt
	}

	rider, err := s.repository.Update(ctx, riderModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update rider: %w", err)
	}
	return rider, nil
}

func (s *Rider) GetRider(ctx context.Context, id string) (*entities.Rider, error) {
	if !isValidRiderID(id) {
		return nil, ErrInvalidRiderID
	}

	rider, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rider: %w", err)
	}

	return rider, nil
}

func (s *Rider) GetRiders(ctx context.Context, actor entities.Actor) ([]entities.Rider, error) {
	if actor.Role != entities.RoleAdmin {
		return nil, fmt.Errorf("%w: only admin can list riders", authorization.ErrWrongRole)
	}

	riders, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get riders: %w", err)
	}

	return riders, nil
}

// SetPresence применяет событие присутствия: статус и время последней активности.
// status равный nil только продлевает присутствие.
func (s *Rider) SetPresence(ctx context.Context, id string, status *entities.RiderStatusType, seenAt time.Time) error {
	if !isValidRiderID(id) {
		return ErrInvalidRiderID
	}
	if status != nil && !isValidStatus(*status) {
		return ErrInvalidStatus
	}
	if seenAt.IsZero() {
		seenAt = s.now()
	}

	_, err := s.repository.Update(ctx, entities.RiderModify{
		ID:         &id,
		Status:     status,
		LastSeenAt: &seenAt,
	})
	if err != nil {
		return fmt.Errorf("set rider %s presence: %w", id, err)
	}
	return nil
}

// PauseIdleRiders ставит на паузу доступных курьеров без активности дольше ttl.
func (s *Rider) PauseIdleRiders(ctx context.Context, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		return 0, ErrInvalidPresenceTTL
	}

	paused, err := s.repository.PauseIdle(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("pause idle riders: %w", err)
	}
	return paused, nil
}
