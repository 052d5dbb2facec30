//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_status_changed_test
package rider_status_changed

import (
	"context"

	"marketplace/internal/entities"
	"marketplace/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ProcessRiderStatusChange(ctx context.Context, event entities.RiderStatusEvent) (*entities.Rider, error)
}
