package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// MaxAttempts 0 означает без ограничения, остановка только по MaxElapsedTime.
	MaxAttempts uint64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc

	// OnRetry вызывается перед каждой паузой с ошибкой попытки и длиной паузы.
	OnRetry func(err error, wait time.Duration)
}

// Startup параметры ожидания зависимостей при старте процесса.
func Startup(maxElapsedTime time.Duration) Config {
	return Config{
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   0.5,
		Multiplier:      2,
	}
}
