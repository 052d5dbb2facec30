//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=offer_test
package offer

import (
	"context"

	"marketplace/internal/entities"
	"marketplace/pkg/logger"
)

// Repository хранилище предложений. ConditionalUpdate пишет delta только если
// текущая версия равна expectedVersion, иначе ErrConcurrentModification.
type Repository interface {
	Create(ctx context.Context, offerCreate entities.OfferCreate) (*entities.Offer, error)
	GetByID(ctx context.Context, id string) (*entities.Offer, error)
	GetByStatus(ctx context.Context, status entities.OfferStatusType, limit, offset uint64) ([]entities.Offer, error)
	ConditionalUpdate(ctx context.Context, id string, expectedVersion int64, delta entities.OfferDelta) (*entities.Offer, error)
}

type RiderService interface {
	GetRider(ctx context.Context, id string) (*entities.Rider, error)
}

// Dispatcher принимает побочные эффекты без ожидания результата.
type Dispatcher interface {
	Notify(ctx context.Context, request entities.NotificationRequest) entities.DispatchRecord
	SettlePayment(ctx context.Context, request entities.PaymentRequest) entities.DispatchRecord
	GetStatus(ctx context.Context, offerID string, version int64) ([]entities.DispatchRecord, error)
}

type NotificationFactory interface {
	Build(
		offer *entities.Offer,
		kind entities.TransitionKind,
		actor entities.Actor,
		payload entities.TransitionPayload,
	) []entities.NotificationRequest
}

type serviceLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
