package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentCallDuration полное время вызова вместе с повторами.
	PaymentCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_call_duration_seconds",
			Help:    "Duration of payment service calls including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2, 3, 5},
		},
		[]string{"method", "grpc_code"},
	)

	PaymentCallAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_call_attempts",
			Help:    "Number of attempts spent on a single payment service call",
			Buckets: prometheus.LinearBuckets(1, 1, maxAttempts),
		},
		[]string{"method"},
	)

	PaymentRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_retries_total",
			Help: "Total number of payment service call retries by gRPC code of the failed attempt",
		},
		[]string{"grpc_code"},
	)

	// PaymentSettlementsTotal result: accepted, settled, declined, unexpected, failed.
	PaymentSettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_settlements_total",
			Help: "Total number of settlement requests by result",
		},
		[]string{"result"},
	)
)
