// Package metrics defines Prometheus metrics for the ATNS client.
//
// Metrics are registered on a caller-supplied registry so the CLI and tests
// each get an isolated set.
//
// Metric naming follows Prometheus conventions:
//   - atns_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups every collector the client records into.
type Metrics struct {
	// RequestsTotal counts gateway responses by method and status code.
	RequestsTotal *prometheus.CounterVec
	// RequestDurationSeconds is a histogram of round-trip time by method.
	RequestDurationSeconds *prometheus.HistogramVec
	// TransportErrorsTotal counts requests that never produced a response.
	TransportErrorsTotal *prometheus.CounterVec
	// UnauthorizedTotal counts 401 responses that tore the session down.
	UnauthorizedTotal prometheus.Counter
	// SessionPersistFailuresTotal counts session writes the storage rejected.
	SessionPersistFailuresTotal prometheus.Counter
}

// New creates the collectors and registers them on reg (skipped when reg is nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atns_gateway_requests_total",
				Help: "Total gateway responses by method and status code.",
			},
			[]string{"method", "code"},
		),
		RequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atns_gateway_request_duration_seconds",
				Help:    "Gateway round-trip duration in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
		TransportErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atns_gateway_transport_errors_total",
				Help: "Total gateway requests that failed before a response arrived.",
			},
			[]string{"method"},
		),
		UnauthorizedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "atns_gateway_unauthorized_total",
				Help: "Total 401 responses that logged the session out.",
			},
		),
		SessionPersistFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "atns_session_persist_failures_total",
				Help: "Total session writes rejected by the storage backend.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.RequestsTotal,
			m.RequestDurationSeconds,
			m.TransportErrorsTotal,
			m.UnauthorizedTotal,
			m.SessionPersistFailuresTotal,
		)
	}
	return m
}

// ObserveResponse records one completed round trip.
func (m *Metrics) ObserveResponse(method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.RequestDurationSeconds.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveTransportError records a request that failed without a response.
func (m *Metrics) ObserveTransportError(method string) {
	if m == nil {
		return
	}
	m.TransportErrorsTotal.WithLabelValues(method).Inc()
}

// RecordUnauthorized records a 401 teardown.
func (m *Metrics) RecordUnauthorized() {
	if m == nil {
		return
	}
	m.UnauthorizedTotal.Inc()
}

// RecordPersistFailure records a failed session write.
func (m *Metrics) RecordPersistFailure() {
	if m == nil {
		return
	}
	m.SessionPersistFailuresTotal.Inc()
}
