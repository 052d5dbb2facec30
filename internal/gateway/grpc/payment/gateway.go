package payment

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"marketplace/internal/entities"
	"marketplace/internal/service/dispatch"
	retrierconfig "marketplace/pkg/retrier"
	"marketplace/pkg/retrier/backoff_adapter"
)

const (
	methodSettle = "Settle"

	idempotencyHeader = "idempotency-key"
)

const (
	resultDeclined   = "declined"
	resultUnexpected = "unexpected"
	resultFailed     = "failed"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxAttempts     = 4
)

var _ dispatch.PaymentGateway = (*PaymentGateway)(nil)

// PaymentGateway повторяет только транспортные ошибки. Повтор безопасен:
// платёжный сервис дедуплицирует по ключу offer:version.
type PaymentGateway struct {
	client  client
	retrier retrier
}

func New(client client) *PaymentGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxAttempts:     maxAttempts,
		ShouldRetry:     isRetryableCode,
		OnRetry: func(err error, _ time.Duration) {
			PaymentRetriesTotal.WithLabelValues(status.Code(err).String()).Inc()
		},
	}

	return &PaymentGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

func (p *PaymentGateway) Settle(ctx context.Context, request entities.PaymentRequest) error {
	req, err := fromDomain(request)
	if err != nil {
		return fmt.Errorf("gateway payment, build request: %w", err)
	}

	ctx = metadata.AppendToOutgoingContext(ctx, idempotencyHeader, idempotencyKey(request))

	var resp *structpb.Struct

	err = p.call(ctx, methodSettle, func(ctx context.Context) error {
		var err error
		resp, err = p.client.Settle(ctx, req)
		return err
	})
	if err != nil {
		PaymentSettlementsTotal.WithLabelValues(resultFailed).Inc()
		return fmt.Errorf("gateway payment, settle %s: %w", idempotencyKey(request), err)
	}

	paymentStatus, reason := statusFrom(resp)
	switch paymentStatus {
	case statusAccepted, statusSettled:
		PaymentSettlementsTotal.WithLabelValues(paymentStatus).Inc()
		return nil
	case resultDeclined:
		PaymentSettlementsTotal.WithLabelValues(resultDeclined).Inc()
		return fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
	default:
		PaymentSettlementsTotal.WithLabelValues(resultUnexpected).Inc()
		return fmt.Errorf("%w: status %q", ErrUnexpectedResponse, paymentStatus)
	}
}

func isRetryableCode(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

// call прогоняет fn через retrier и пишет длительность и число попыток.
func (p *PaymentGateway) call(ctx context.Context, method string, fn func(context.Context) error) error {
	attempts := 0
	start := time.Now()

	err := p.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempts++
		return fn(ctx)
	})

	PaymentCallDuration.WithLabelValues(method, status.Code(err).String()).Observe(time.Since(start).Seconds())
	PaymentCallAttempts.WithLabelValues(method).Observe(float64(attempts))

	return err
}
