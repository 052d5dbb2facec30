//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=offer_transition_post_test
package offer_transition_post

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
	ApplyTransition(ctx context.Context, offerID string, kind entities.TransitionKind, actor entities.Actor, payload entities.TransitionPayload) (*entities.TransitionResult, error)
}
