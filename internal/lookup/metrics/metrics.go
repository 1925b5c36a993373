package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the lookup module.
type Metrics struct {
	// Provider fetch latency by entity (city, street)
	FetchLatency *prometheus.HistogramVec

	// Cache outcomes by entity and result (hit, miss)
	CacheRequests *prometheus.CounterVec

	// Provider failures by entity
	ProviderFailures *prometheus.CounterVec

	// Circuit breaker transitions by direction (opened, closed)
	BreakerTransitions *prometheus.CounterVec
}

// New creates a Metrics instance with all lookup module metrics registered.
func New() *Metrics {
	return &Metrics{
		FetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_lookup_fetch_duration_seconds",
			Help:    "Duration of datastore fetches by entity",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"entity"}),

		CacheRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_lookup_cache_requests_total",
			Help: "Lookup cache requests by entity and result",
		}, []string{"entity", "result"}),

		ProviderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_lookup_provider_failures_total",
			Help: "Datastore provider failures by entity",
		}, []string{"entity"}),

		BreakerTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_lookup_breaker_transitions_total",
			Help: "Lookup circuit breaker transitions by direction",
		}, []string{"direction"}),
	}
}

// ObserveFetchLatency records the duration of one provider fetch.
func (m *Metrics) ObserveFetchLatency(entity string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(entity).Observe(d.Seconds())
	}
}

// IncrementCache records a cache hit or miss.
func (m *Metrics) IncrementCache(entity, result string) {
	if m != nil {
		m.CacheRequests.WithLabelValues(entity, result).Inc()
	}
}

// IncrementProviderFailure records one provider failure.
func (m *Metrics) IncrementProviderFailure(entity string) {
	if m != nil {
		m.ProviderFailures.WithLabelValues(entity).Inc()
	}
}

// IncrementBreakerTransition records a breaker state change.
func (m *Metrics) IncrementBreakerTransition(direction string) {
	if m != nil {
		m.BreakerTransitions.WithLabelValues(direction).Inc()
	}
}
