package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storm_charts"

// Metrics holds the Prometheus counters, histograms, and gauges for the chart service.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Chart rendering metrics.
	ChartsRendered  *prometheus.CounterVec // labels: kind={hourly,precipitation,day}
	RenderDuration  prometheus.Histogram
	BundleSizeBytes prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec // labels: route, code
	BreakerState    prometheus.Gauge       // 0 closed, 1 half-open, 2 open

	BundleCacheLookups *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}

	return &Metrics{
		MessagesConsumed: counter("messages_consumed_total", "Total forecast snapshots read from the source topic."),
		MessagesProduced: counter("messages_produced_total", "Total chart bundles written to the sink topic."),
		TransformErrors:  counter("transform_errors_total", "Total snapshots that could not be charted."),
		PipelineRunning:  gauge("pipeline_running", "1 when the pipeline is active, 0 when shut down."),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ChartsRendered: counterVec("charts_rendered_total", "Charts rendered by kind.", "kind"),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent building one chart bundle.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		BundleSizeBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bundle_size_bytes",
			Help:      "Encoded size of chart bundles.",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		HTTPRequests:       counterVec("http_requests_total", "HTTP API requests by route and status code.", "route", "code"),
		BreakerState:       gauge("sink_breaker_state", "Sink circuit breaker state: 0 closed, 1 half-open, 2 open."),
		BundleCacheLookups: counterVec("bundle_cache_lookups_total", "HTTP bundle cache lookups by result.", "result"),
	}
}

func collectors(m *Metrics) []prometheus.Collector {
	return []prometheus.Collector{
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ChartsRendered,
		m.RenderDuration,
		m.BundleSizeBytes,
		m.HTTPRequests,
		m.BreakerState,
		m.BundleCacheLookups,
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(collectors(m)...)
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(collectors(m)...)
	return m
}
