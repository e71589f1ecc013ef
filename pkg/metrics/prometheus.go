// Package metrics provides Prometheus metrics for the trade idea engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Signal label values.
const (
	SignalSentiment  = "sentiment"
	SignalPopularity = "popularity"
	SignalCombined   = "combined"
)

// Manager owns every metric of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Engine metrics
	postsAnalyzed    prometheus.Counter
	tickersScored    *prometheus.CounterVec
	seriesSkipped    prometheus.Counter
	ideasGenerated   prometheus.Counter
	ideasRejected    prometheus.Counter
	nonFiniteScores  *prometheus.CounterVec
	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByEndpoint *prometheus.CounterVec
	errorsByType     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton used by package helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry served on /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stocksanalyzer",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates and registers all metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.postsAnalyzed = auto.NewCounter(m.counterOpts("posts_analyzed_total", "Total number of social posts scored"))
	m.tickersScored = auto.NewCounterVec(m.counterOpts("tickers_scored_total", "Total number of per-ticker scores produced, by signal"), []string{"signal"})
	m.seriesSkipped = auto.NewCounter(m.counterOpts("series_skipped_total", "Total number of price/volume series skipped for short history"))
	m.ideasGenerated = auto.NewCounter(m.counterOpts("ideas_generated_total", "Total number of trade ideas that cleared the threshold"))
	m.ideasRejected = auto.NewCounter(m.counterOpts("ideas_rejected_total", "Total number of tickers whose combined score fell below the threshold"))
	m.nonFiniteScores = auto.NewCounterVec(m.counterOpts("non_finite_scores_total", "Total number of NaN or infinite scores, by signal"), []string{"signal"})
	m.operations = auto.NewCounterVec(m.counterOpts("operations_total", "Total number of engine operations, by operation"), []string{"operation"})
	m.operationLatency = auto.NewHistogramVec(m.histogramOpts("operation_latency_milliseconds", "Engine operation latency in milliseconds"), []string{"operation"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorsByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total", "Total number of errors by type and severity"), []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordPostsAnalyzed adds n scored posts.
func (m *Manager) RecordPostsAnalyzed(n int) {
	if m.enabled && n > 0 {
		m.postsAnalyzed.Add(float64(n))
	}
}

// RecordTickersScored adds n per-ticker scores for signal.
func (m *Manager) RecordTickersScored(signal string, n int) {
	if m.enabled && n > 0 {
		m.tickersScored.WithLabelValues(signal).Add(float64(n))
	}
}

// RecordSeriesSkipped adds n skipped series.
func (m *Manager) RecordSeriesSkipped(n int) {
	if m.enabled && n > 0 {
		m.seriesSkipped.Add(float64(n))
	}
}

// RecordIdeas records how many tickers qualified and how many did not.
func (m *Manager) RecordIdeas(generated, rejected int) {
	if !m.enabled {
		return
	}
	if generated > 0 {
		m.ideasGenerated.Add(float64(generated))
	}
	if rejected > 0 {
		m.ideasRejected.Add(float64(rejected))
	}
}

// RecordNonFinite adds n non-finite scores for signal.
func (m *Manager) RecordNonFinite(signal string, n int) {
	if m.enabled && n > 0 {
		m.nonFiniteScores.WithLabelValues(signal).Add(float64(n))
	}
}

// RecordOperation counts one engine operation and its latency.
func (m *Manager) RecordOperation(operation string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.operations.WithLabelValues(operation).Inc()
	m.operationLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordHTTPRequest counts one HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError counts an error against its endpoint and type.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystem sets memory and goroutine gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// Global returns the process-wide manager registered on the custom registry.
func Global() *Manager { return globalManager }

// GetRegistry returns the custom registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
