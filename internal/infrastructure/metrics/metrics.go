// Package metrics holds the prometheus collectors shared by the service.
// Collectors are registered on the default registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking submission outcomes.
const (
	OutcomeCreated    = "created"
	OutcomeInvalid    = "invalid"
	OutcomeDuplicate  = "duplicate"
	OutcomeFailed     = "failed"
	OutcomeTimeout    = "timeout"
	QuoteResultOK     = "ok"
	QuoteResultEmpty  = "empty"
	QuoteResultFailed = "failed"
)

var (
	// BookingsSubmitted counts booking submissions by outcome.
	BookingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charter_bookings_submitted_total",
		Help: "The total number of booking submissions by outcome",
	}, []string{"outcome"})

	// NotificationWrites counts best-effort notification writes by status.
	NotificationWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charter_booking_notifications_total",
		Help: "The total number of booking notification writes by status",
	}, []string{"status"})

	// EventPublishErrors counts booking events that could not be published.
	EventPublishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "charter_booking_event_publish_errors_total",
		Help: "The total number of failed booking event publish attempts",
	})

	// QuotesServed counts quote requests by result.
	QuotesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charter_quotes_total",
		Help: "The total number of quote requests by result",
	}, []string{"result"})

	// SubmitDuration observes the wall time of the primary booking write.
	SubmitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "charter_booking_submit_duration_seconds",
		Help:    "Duration of the primary booking write",
		Buckets: prometheus.DefBuckets,
	})

	// CheckoutSessions counts payment session creations by result.
	CheckoutSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "charter_checkout_sessions_total",
		Help: "The total number of checkout session requests by result",
	}, []string{"result"})
)
