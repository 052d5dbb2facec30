package backoff_adapter

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"marketplace/pkg/retrier"
)

var _ retrier.Retrier = (*Retrier)(nil)

// Retrier экспоненциальные повторы на cenkalti/backoff.
type Retrier struct {
	config retrier.Config
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	return backoff.RetryNotify(
		r.operation(ctx, fn),
		backoff.WithContext(r.policy(), ctx),
		r.config.OnRetry,
	)
}

// policy собирается на каждый вызов: ExponentialBackOff хранит состояние.
func (r *Retrier) policy() backoff.BackOff {
	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	if r.config.MaxAttempts == 0 {
		return exp
	}
	// первая попытка не считается повтором
	return backoff.WithMaxRetries(exp, r.config.MaxAttempts-1)
}

func (r *Retrier) operation(ctx context.Context, fn func(context.Context) error) backoff.Operation {
	shouldRetry := r.config.ShouldRetry
	return func() error {
		err := fn(ctx)
		if err == nil || shouldRetry == nil || shouldRetry(err) {
			return err
		}
		return backoff.Permanent(err)
	}
}
