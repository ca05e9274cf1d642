// Package metrics exposes Prometheus collectors for collaborator calls and
// HTTP requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsdigest"

// Metrics is safe to use as a nil pointer; every method becomes a no-op.
type Metrics struct {
	registry      *prometheus.Registry
	calls         *prometheus.CounterVec
	callDurations *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_calls_total",
			Help:      "Calls to external collaborators by outcome.",
		}, []string{"collaborator", "outcome"}),
		callDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collaborator_duration_seconds",
			Help:      "Latency of calls to external collaborators.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"collaborator"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"path", "status"}),
	}
	m.registry.MustRegister(m.calls, m.callDurations, m.httpRequests)
	return m
}

// ObserveCall records one collaborator call that started at start.
func (m *Metrics) ObserveCall(collaborator string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.calls.WithLabelValues(collaborator, outcome).Inc()
	m.callDurations.WithLabelValues(collaborator).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveRequest(path, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, status).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
