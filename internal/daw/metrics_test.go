package daw

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordQueueDrop(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)

	m.recordQueueDrop("commands")
	m.recordQueueDrop("commands")

	count := testutil.ToFloat64(m.queueDrops.WithLabelValues("commands"))
	require.Equal(t, float64(2), count)
}

func TestMetricsRecordResampleCache(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)

	m.recordResampleCache(true)
	m.recordResampleCache(false)

	require.Equal(t, float64(1), testutil.ToFloat64(m.resampleCache.WithLabelValues("hit")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.resampleCache.WithLabelValues("miss")))
}

func TestMetricsNilReceiverIsNoOp(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.recordQueueDrop("status")
		m.recordCallbackDuration(time.Millisecond)
		m.recordResampleCache(true)
		m.recordRender(time.Second, 1000)
	})
}
