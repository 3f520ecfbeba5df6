package metrics_test

import (
	"errors"
	"testing"

	"toytopia/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	m := metrics.New()

	m.RequestsTotal.WithLabelValues("GET", "/allToys", "200").Inc()
	m.StoreOperations.WithLabelValues("list", "ok").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/allToys", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues("list", "ok")))

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["toytopia_http_requests_total"])
	assert.True(t, names["toytopia_store_operations_total"])
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", metrics.Status(nil))
	assert.Equal(t, "error", metrics.Status(errors.New("boom")))
}
