// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadnest_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FanoutDuration records entity-reader fan-out latency by entity kind.
	FanoutDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "threadnest_fanout_duration_seconds",
		Help:    "Entity reader fan-out latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity"})

	// FanoutErrors counts fan-out sub-lookup failures by entity kind.
	FanoutErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadnest_fanout_errors_total",
		Help: "Total number of failed entity reader fan-outs",
	}, []string{"entity"})

	// UploadsTotal counts image uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadnest_image_uploads_total",
		Help: "Total number of image uploads by outcome",
	}, []string{"outcome"})

	// ConfirmationCodesIssued counts confirmation codes handed out.
	ConfirmationCodesIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "threadnest_confirmation_codes_issued_total",
		Help: "Total number of confirmation codes issued",
	})

	// ConfirmationCodeChecks counts code checks by result.
	ConfirmationCodeChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "threadnest_confirmation_code_checks_total",
		Help: "Total number of confirmation code checks by result",
	}, []string{"result"})
)
