// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reminder_requests_total",
			Help: "Total number of reminder requests by outcome",
		},
		[]string{"outcome"},
	)

	RemindersEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reminder_emails_sent_total",
			Help: "Total number of reminder emails accepted by the provider",
		},
		[]string{"payment_status"},
	)

	RemindersFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reminder_failures_total",
			Help: "Total number of failed reminder requests by error code",
		},
		[]string{"error_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_reminder_request_duration_seconds",
			Help:    "Duration of reminder HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomePreflight = "preflight"
)
