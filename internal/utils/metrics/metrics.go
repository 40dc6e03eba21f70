package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Order action metrics
	ActionsTotal        *prometheus.CounterVec
	BackendCallDuration *prometheus.HistogramVec
	GatewayBreakerState *prometheus.GaugeVec

	// Handoff metrics
	HandoffsTotal *prometheus.CounterVec
}

// NewWithRegistry creates a new Metrics instance registered on reg.
func NewWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "orderflow"
	}
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// Order action metrics
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Total number of order actions by terminal outcome",
			},
			[]string{"action", "outcome"}, // outcome: declined, updated, rejected, fault, launched, unavailable
		),
		BackendCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_call_duration_seconds",
				Help:      "Duration of backend and gateway calls in seconds",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"call"},
		),
		GatewayBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "gateway_breaker_state",
				Help:      "Payment gateway circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),

		// Handoff metrics
		HandoffsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkout_handoffs_total",
				Help:      "Total number of checkout handoffs by delivery result",
			},
			[]string{"transport", "result"},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAction records the terminal outcome of an order action.
func (m *Metrics) RecordAction(action, outcome string) {
	if m == nil {
		return
	}
	m.ActionsTotal.WithLabelValues(action, outcome).Inc()
}

// RecordBackendCall records how long a backend or gateway call took.
func (m *Metrics) RecordBackendCall(call string, duration time.Duration) {
	if m == nil {
		return
	}
	m.BackendCallDuration.WithLabelValues(call).Observe(duration.Seconds())
}

// SetBreakerState sets the gauge for a named circuit breaker.
func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.GatewayBreakerState.WithLabelValues(name).Set(state)
}

// RecordHandoff records a checkout handoff delivery attempt.
func (m *Metrics) RecordHandoff(transport string, delivered bool) {
	if m == nil {
		return
	}
	m.HandoffsTotal.WithLabelValues(transport, strconv.FormatBool(delivered)).Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
