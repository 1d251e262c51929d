package daw

import (
	stderrors "errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/korbindeman/goaw/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the realtime engine, session,
// and offline renderer. A registry is passed in and every collector is
// registered against it so callers can use their own registry in tests.
type Metrics struct {
	queueDrops       *prometheus.CounterVec   // queue=commands|tracks|status
	callbackDuration prometheus.Histogram     // audio callback wall time, seconds
	resampleCache    *prometheus.CounterVec   // result=hit|miss
	renderDuration   prometheus.Histogram     // offline render wall time, seconds
	renderedSamples  prometheus.Counter
}

// NewMetrics creates and registers a Metrics collector against registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queueDrops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goaw",
			Subsystem: "engine",
			Name:      "queue_drops_total",
			Help:      "Dropped pushes to the lock-free command/track/status queues.",
		}, []string{"queue"}),
		callbackDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "goaw",
			Subsystem: "engine",
			Name:      "callback_duration_seconds",
			Help:      "Wall time spent inside one audio device callback invocation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		resampleCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goaw",
			Subsystem: "session",
			Name:      "resample_cache_total",
			Help:      "Resample cache lookups by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "goaw",
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Wall time spent producing one offline mixdown.",
			Buckets:   prometheus.DefBuckets,
		}),
		renderedSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goaw",
			Subsystem: "render",
			Name:      "samples_total",
			Help:      "Total interleaved samples written by the offline renderer.",
		}),
	}

	collectors := []prometheus.Collector{
		m.queueDrops, m.callbackDuration, m.resampleCache, m.renderDuration, m.renderedSamples,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if stderrors.As(err, &are) {
				continue
			}
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordQueueDrop(queue string) {
	if m == nil {
		return
	}
	m.queueDrops.WithLabelValues(queue).Inc()
}

func (m *Metrics) recordCallbackDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.callbackDuration.Observe(d.Seconds())
}

func (m *Metrics) recordResampleCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.resampleCache.WithLabelValues(result).Inc()
}

func (m *Metrics) recordRender(d time.Duration, samples int) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
	m.renderedSamples.Add(float64(samples))
}

// globalMetrics is the process-wide metrics instance. PPQN and the audio
// device are this package's only other process-wide state.
var (
	globalMetrics     atomic.Pointer[Metrics]
	globalMetricsOnce sync.Once
	metricsLogger     *slog.Logger
)

// InitMetrics initializes the global metrics collector against registry.
// Safe to call once; subsequent calls are no-ops.
func InitMetrics(registry prometheus.Registerer) {
	globalMetricsOnce.Do(func() {
		metricsLogger = logging.ForService("daw")
		if metricsLogger == nil {
			metricsLogger = slog.Default()
		}
		if registry == nil {
			registry = prometheus.DefaultRegisterer
		}
		m, err := NewMetrics(registry)
		if err != nil {
			metricsLogger.Error("failed to initialize daw metrics", "error", err)
			return
		}
		globalMetrics.Store(m)
		metricsLogger.Debug("daw metrics initialized")
	})
}

// GetMetrics returns the global metrics collector, or nil if InitMetrics
// was never called - every recorder method tolerates a nil receiver so
// callers need not branch on initialization state.
func GetMetrics() *Metrics {
	return globalMetrics.Load()
}
