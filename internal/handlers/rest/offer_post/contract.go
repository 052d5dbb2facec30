//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=offer_post_test
package offer_post

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
	CreateOffer(ctx context.Context, actor entities.Actor, draft entities.OfferDraft) (*entities.Offer, error)
}
