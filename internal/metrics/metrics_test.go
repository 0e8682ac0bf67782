package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllMetrics(t *testing.T) {
	m := New()
	require.NotNil(t, m.Registry)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/features/trip/{id}", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/features/trip/{id}").Observe(0.01)
	m.ObserveComputation("success", 5*time.Millisecond)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["elettra_http_requests_total"])
	assert.True(t, names["elettra_http_request_duration_seconds"])
	assert.True(t, names["elettra_feature_computations_total"])
	assert.True(t, names["elettra_feature_computation_duration_seconds"])
}

func TestObserveComputationCountsByOutcome(t *testing.T) {
	m := New()

	m.ObserveComputation("success", time.Millisecond)
	m.ObserveComputation("success", time.Millisecond)
	m.ObserveComputation("missing_elevation", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ComputationsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ComputationsTotal.WithLabelValues("missing_elevation")))
}

func TestStartDBStatsCollectorNilDB(t *testing.T) {
	m := New()
	// Must be a no-op, and Shutdown must not block.
	m.StartDBStatsCollector(nil, time.Millisecond)
	m.Shutdown()
}
