package retrier

import (
	"context"
	"fmt"

	"marketplace/pkg/logger"
)

type probeLogger interface {
	Info(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// WaitReady повторяет probe, пока зависимость не ответит или retrier не сдастся.
func WaitReady(
	ctx context.Context,
	log probeLogger,
	r Retrier,
	dependency string,
	probe func(context.Context) error,
) error {
	var attempt uint64
	err := r.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Info(fmt.Sprintf("attempting %s connection", dependency))

		return probe(ctx)
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error(fmt.Sprintf("%s connection failed after retries", dependency))
		return fmt.Errorf("%s is not ready after %d attempts: %w", dependency, attempt, err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info(fmt.Sprintf("%s connection established", dependency))
	return nil
}
