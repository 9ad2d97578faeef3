package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	m := &dto.Metric{}
	if err := cv.WithLabelValues(labels...).Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func getCounter(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestNew_RegistersAllCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveResponse("GET", 200, 10*time.Millisecond)
	m.ObserveTransportError("GET")
	m.RecordUnauthorized()
	m.RecordPersistFailure()

	fams, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range fams {
		names[f.GetName()] = true
	}
	for _, n := range []string{
		"atns_gateway_requests_total",
		"atns_gateway_request_duration_seconds",
		"atns_gateway_transport_errors_total",
		"atns_gateway_unauthorized_total",
		"atns_session_persist_failures_total",
	} {
		require.True(t, names[n], "missing %s", n)
	}
}

func TestObserveResponse_LabelsByCode(t *testing.T) {
	t.Parallel()

	m := New(nil)
	m.ObserveResponse("GET", 200, time.Millisecond)
	m.ObserveResponse("GET", 200, time.Millisecond)
	m.ObserveResponse("POST", 401, time.Millisecond)

	require.Equal(t, 2.0, getCounterValue(m.RequestsTotal, "GET", "200"))
	require.Equal(t, 1.0, getCounterValue(m.RequestsTotal, "POST", "401"))
	require.Equal(t, 0.0, getCounterValue(m.RequestsTotal, "POST", "200"))
}

func TestCounters(t *testing.T) {
	t.Parallel()

	m := New(nil)
	m.RecordUnauthorized()
	m.RecordUnauthorized()
	m.RecordPersistFailure()
	m.ObserveTransportError("DELETE")

	require.Equal(t, 2.0, getCounter(m.UnauthorizedTotal))
	require.Equal(t, 1.0, getCounter(m.SessionPersistFailuresTotal))
	require.Equal(t, 1.0, getCounterValue(m.TransportErrorsTotal, "DELETE"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveResponse("GET", 200, time.Second)
	m.ObserveTransportError("GET")
	m.RecordUnauthorized()
	m.RecordPersistFailure()
}
