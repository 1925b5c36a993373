package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	// Submission outcomes by result (accepted, invalid, relay_failed,
	// config_error)
	Submissions *prometheus.CounterVec

	// Webhook delivery latency
	RelayLatency prometheus.Histogram

	// Validation failures by the root of the offending field path
	// (id, firstName, phoneNumbers, addresses, ...)
	ValidationFailures *prometheus.CounterVec
}

// New creates a Metrics instance with all registration module metrics
// registered.
func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_registration_submissions_total",
			Help: "Registration submissions by result",
		}, []string{"result"}),

		RelayLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_registration_relay_duration_seconds",
			Help:    "Duration of webhook deliveries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_registration_validation_failures_total",
			Help: "Validation failures by field path root",
		}, []string{"field"}),
	}
}

// IncrementSubmission records one submission outcome.
func (m *Metrics) IncrementSubmission(result string) {
	if m != nil {
		m.Submissions.WithLabelValues(result).Inc()
	}
}

// ObserveRelayLatency records the duration of one webhook delivery.
func (m *Metrics) ObserveRelayLatency(d time.Duration) {
	if m != nil {
		m.RelayLatency.Observe(d.Seconds())
	}
}

// IncrementValidationFailure records one failing field by its path root.
func (m *Metrics) IncrementValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(field).Inc()
	}
}
