package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all client-side metrics
type Metrics struct {
	// API call metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec
	APIFailures *prometheus.CounterVec

	// Breaker and notifier metrics
	BreakerRejections prometheus.Counter
	ActiveToasts      prometheus.Gauge
}

// NewMetrics creates and registers all client metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		APIRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_requests_total",
			Help:      "Total number of backend API requests",
		}, []string{"resource", "operation", "status"}),
		APILatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of backend API requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"resource", "operation"}),
		APIFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_request_failures_total",
			Help:      "Total number of failed backend API requests",
		}, []string{"resource", "operation", "kind"}),
		BreakerRejections: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "breaker_rejections_total",
			Help:      "Requests rejected by the open circuit breaker",
		}),
		ActiveToasts: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_notifications",
			Help:      "Notifications currently visible",
		}),
	}
}
