// Package metrics provides Prometheus metrics for the SHARE scoring engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the scoring engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring metrics
	recordsScored    prometheus.Counter
	scoringErrors    prometheus.Counter
	extractionFaults prometheus.Counter
	clampedResults   prometheus.Counter
	scoringLatency   prometheus.Histogram

	// Batch metrics
	batchesStarted   prometheus.Counter
	batchesCompleted prometheus.Counter
	batchesCanceled  prometheus.Counter
	batchSize        prometheus.Histogram
	activeWorkers    prometheus.Gauge

	// Index metrics
	indexComputations prometheus.Counter
	portfolioSize     prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "share",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics registers all metrics on the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_scored_total",
		Help:      "Total number of records scored successfully",
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total number of records whose scoring failed",
	})

	m.extractionFaults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "extraction_faults_total",
		Help:      "Total number of signals resolved to defaults after a rule fault",
	})

	m.clampedResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "clamped_results_total",
		Help:      "Total number of results clamped back into their documented bounds",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "latency_milliseconds",
		Help:      "Histogram of per-record scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.batchesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "started_total",
		Help:      "Total number of batch runs started",
	})

	m.batchesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "completed_total",
		Help:      "Total number of batch runs completed",
	})

	m.batchesCanceled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "canceled_total",
		Help:      "Total number of batch runs canceled before completion",
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "size_records",
		Help:      "Histogram of records per batch run",
		Buckets:   []float64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000},
	})

	m.activeWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "active_workers",
		Help:      "Number of scoring workers currently running",
	})

	m.indexComputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sindex",
		Name:      "computations_total",
		Help:      "Total number of S-Index computations",
	})

	m.portfolioSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "sindex",
		Name:      "portfolio_size",
		Help:      "Histogram of portfolio sizes fed to the S-Index calculator",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 500, 1_000},
	})
}

// RecordScored increments the scored records counter.
func RecordScored() {
	globalManager.recordsScored.Inc()
}

// RecordScoringError increments the scoring errors counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordExtractionFaults adds recovered extraction faults.
func RecordExtractionFaults(n int) {
	globalManager.extractionFaults.Add(float64(n))
}

// RecordClampedResult increments the clamped results counter.
func RecordClampedResult() {
	globalManager.clampedResults.Inc()
}

// RecordScoringLatency records per-record scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordBatchStarted increments the started batches counter and observes
// the batch size.
func RecordBatchStarted(records int) {
	globalManager.batchesStarted.Inc()
	globalManager.batchSize.Observe(float64(records))
}

// RecordBatchCompleted increments the completed batches counter.
func RecordBatchCompleted() {
	globalManager.batchesCompleted.Inc()
}

// RecordBatchCanceled increments the canceled batches counter.
func RecordBatchCanceled() {
	globalManager.batchesCanceled.Inc()
}

// UpdateActiveWorkers sets the active worker gauge.
func UpdateActiveWorkers(count int) {
	globalManager.activeWorkers.Set(float64(count))
}

// RecordIndexComputation increments the S-Index counter and observes the
// portfolio size.
func RecordIndexComputation(portfolio int) {
	globalManager.indexComputations.Inc()
	globalManager.portfolioSize.Observe(float64(portfolio))
}

// GetRegistry returns the custom registry for exposition by callers that
// mount their own metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
