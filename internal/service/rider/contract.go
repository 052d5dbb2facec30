//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_test
package rider

import (
	"context"
	"time"

	"marketplace/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error)
	GetByID(ctx context.Context, id string) (*entities.Rider, error)
	GetAll(ctx context.Context) ([]entities.Rider, error)
	Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error)
	PauseIdle(ctx context.Context, seenBefore time.Time) (int64, error)
}
