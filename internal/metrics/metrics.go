// Package metrics exposes Prometheus instrumentation for the intake service:
// an HTTP middleware recording per-handler request metrics and a set of
// domain counters for uploads, deliveries and sweeps.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Middleware collects HTTP request metrics for wrapped handlers.
type Middleware struct {
	buckets  []float64
	registry prometheus.Registerer
}

// New creates a Middleware registering its collectors on registry.
func New(registry prometheus.Registerer) *Middleware {
	return &Middleware{
		// uploads and submissions can take seconds; max bucket is ~20s
		buckets:  prometheus.ExponentialBuckets(0.01, 2, 12),
		registry: registry,
	}
}

// Monitor wraps handler so every request is counted, timed and sized under
// the given handler name. Each name may be monitored once per registry.
func (m *Middleware) Monitor(handlerName string, handler http.Handler) http.HandlerFunc {
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"handler": handlerName}, m.registry)
	labels := []string{"method", "code"}

	requestsTotal := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Tracks the number of HTTP requests.",
		}, labels,
	)
	requestDuration := promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Tracks the latencies for HTTP requests.",
			Buckets: m.buckets,
		}, labels,
	)
	requestSize := promauto.With(reg).NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_size_bytes",
			Help: "Tracks the size of HTTP requests.",
		}, labels,
	)

	base := promhttp.InstrumentHandlerCounter(
		requestsTotal,
		promhttp.InstrumentHandlerDuration(
			requestDuration,
			promhttp.InstrumentHandlerRequestSize(requestSize, handler),
		),
	)

	return base.ServeHTTP
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
