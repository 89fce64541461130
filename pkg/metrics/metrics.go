package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitrep"

// Metrics holds the Prometheus collectors for the API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration       *prometheus.HistogramVec // labels: method, route
	TyphoonTransitions *prometheus.CounterVec   // labels: action
	BulkRows           *prometheus.CounterVec   // labels: entity, outcome={created,updated,skipped}
	RenderFailures     prometheus.Counter
}

func build() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		TyphoonTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "typhoon_transitions_total",
			Help:      "Typhoon lifecycle transitions by action.",
		}, []string{"action"}),
		BulkRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bulk_rows_total",
			Help:      "Report rows processed by bulk submission, by entity and outcome.",
		}, []string{"entity", "outcome"}),
		RenderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_render_failures_total",
			Help:      "PDF snapshot generations that failed.",
		}),
	}
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := build()
	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.TyphoonTransitions,
		m.BulkRows,
		m.RenderFailures,
	)
	return m
}

// NewForTesting creates Metrics on a fresh registry so tests never collide
// with "already registered" panics.
func NewForTesting() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TyphoonTransition counts a lifecycle action (create, pause, end, ...).
func (m *Metrics) TyphoonTransition(action string) {
	if m == nil {
		return
	}
	m.TyphoonTransitions.WithLabelValues(action).Inc()
}

// BulkRowsProcessed adds n rows with the given outcome.
func (m *Metrics) BulkRowsProcessed(entity, outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.BulkRows.WithLabelValues(entity, outcome).Add(float64(n))
}

// RenderFailed counts a failed snapshot render.
func (m *Metrics) RenderFailed() {
	if m == nil {
		return
	}
	m.RenderFailures.Inc()
}
