package observability

import (
	"github.com/eaglebank/mts/shared/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the user service exports.
type Metrics struct {
	HTTP *middleware.HTTPMetrics

	UserOperationsTotal *prometheus.CounterVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTP: &middleware.HTTPMetrics{
			RequestsTotal: factory.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "endpoint", "status"},
			),
			RequestDuration: factory.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "endpoint"},
			),
			RequestsInFlight: factory.NewGauge(
				prometheus.GaugeOpts{
					Name: "http_requests_in_flight",
					Help: "Number of HTTP requests currently being processed",
				},
			),
		},

		UserOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "user_operations_total",
				Help: "User resource operations by classified outcome",
			},
			[]string{"operation", "outcome"}, // outcome: ok, rejected, not_found, invalid, failed
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of read model cache hits",
			},
			[]string{"key_type"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of read model cache misses",
			},
			[]string{"key_type"},
		),
	}
}

func (m *Metrics) RecordUserOperation(operation, outcome string) {
	m.UserOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) RecordCacheLookup(keyType string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(keyType).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(keyType).Inc()
}
