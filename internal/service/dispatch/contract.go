//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"

	"marketplace/internal/entities"
	"marketplace/pkg/logger"
)

type Notifier interface {
	Publish(ctx context.Context, request entities.NotificationRequest) error
}

type PaymentGateway interface {
	Settle(ctx context.Context, request entities.PaymentRequest) error
}

// StatusStore хранит итог каждой попытки по ключу (offerID, version).
type StatusStore interface {
	Save(ctx context.Context, offerID string, version int64, record entities.DispatchRecord) error
	List(ctx context.Context, offerID string, version int64) ([]entities.DispatchRecord, error)
}

type dispatcherLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
