// Package metrics provides Prometheus metrics for the skillradar analyzer.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeFailed    = "failed"
	OutcomeDuplicate = "duplicate"
)

// Timed operations.
const (
	OpAnalyze = "analyze"
	OpBatch   = "batch"
	OpLoad    = "load"
)

var defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}

// Manager owns every analyzer metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Engine
	analyses        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	suggestions     *prometheus.CounterVec
	riskLevels      *prometheus.CounterVec
	careerMatch     prometheus.Histogram
	effortScore     prometheus.Histogram
	profilesSkipped prometheus.Counter

	// Ingestion and batch
	loadErrors   prometheus.Counter
	batchWorkers prometheus.Gauge
	batchSize    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton manager behind the Record* helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry shared with the textfile export

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillradar",
		subsystem:        "engine",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.enabled {
		m.initializeMetrics()
	}
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.analyses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyses_total",
		Help:        "Profiles analysed, by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.latency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "operation_latency_milliseconds",
		Help:        "Latency of analysis, batch and profile load operations in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.suggestions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "suggestions_emitted_total",
		Help:        "Suggestions emitted, by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.riskLevels = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "risk_level_total",
		Help:        "Trend risk classifications, by level",
		ConstLabels: labels,
	}, []string{"level"})

	m.careerMatch = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "career_match_percentage",
		Help:        "Distribution of career match percentages",
		Buckets:     prometheus.LinearBuckets(10, 10, 10),
		ConstLabels: labels,
	})

	m.effortScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "effort_score",
		Help:        "Distribution of effort scores",
		Buckets:     prometheus.LinearBuckets(10, 10, 10),
		ConstLabels: labels,
	})

	m.profilesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "profiles_duplicate_total",
		Help:        "Profiles skipped because their learner id was already analysed in the batch",
		ConstLabels: labels,
	})

	m.loadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "profile",
		Name:        "load_errors_total",
		Help:        "Profile files that could not be loaded or validated",
		ConstLabels: labels,
	})

	m.batchWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "batch",
		Name:        "workers",
		Help:        "Concurrent workers used by the current batch",
		ConstLabels: labels,
	})

	m.batchSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "batch",
		Name:        "profiles",
		Help:        "Profiles submitted in the current batch",
		ConstLabels: labels,
	})
}

// RecordAnalysis counts one analysis outcome.
func (m *Manager) RecordAnalysis(outcome string) {
	if m.enabled {
		m.analyses.WithLabelValues(outcome).Inc()
	}
}

// RecordLatency observes an operation latency in milliseconds.
func (m *Manager) RecordLatency(operation string, ms float64) {
	if m.enabled {
		m.latency.WithLabelValues(operation).Observe(ms)
	}
}

// RecordSuggestion counts one emitted suggestion of kind.
func (m *Manager) RecordSuggestion(kind string) {
	if m.enabled {
		m.suggestions.WithLabelValues(kind).Inc()
	}
}

// RecordRiskLevel counts one risk classification.
func (m *Manager) RecordRiskLevel(level string) {
	if m.enabled {
		m.riskLevels.WithLabelValues(level).Inc()
	}
}

// RecordCareerMatch observes one career match percentage.
func (m *Manager) RecordCareerMatch(pct int) {
	if m.enabled {
		m.careerMatch.Observe(float64(pct))
	}
}

// RecordEffortScore observes one effort score.
func (m *Manager) RecordEffortScore(score int) {
	if m.enabled {
		m.effortScore.Observe(float64(score))
	}
}

// RecordDuplicateProfile counts a profile skipped by batch dedupe.
func (m *Manager) RecordDuplicateProfile() {
	if m.enabled {
		m.profilesSkipped.Inc()
		m.analyses.WithLabelValues(OutcomeDuplicate).Inc()
	}
}

// RecordLoadError counts a profile file that failed to load.
func (m *Manager) RecordLoadError() {
	if m.enabled {
		m.loadErrors.Inc()
	}
}

// UpdateBatch sets the batch gauges.
func (m *Manager) UpdateBatch(workers, profiles int) {
	if m.enabled {
		m.batchWorkers.Set(float64(workers))
		m.batchSize.Set(float64(profiles))
	}
}

// WriteTextfile writes every metric gathered by the manager's registry to
// path in the Prometheus text format.
func (m *Manager) WriteTextfile(path string) error {
	g, ok := m.registry.(prometheus.Gatherer)
	if !ok {
		return ErrNoGatherer
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// RecordLoadError counts a profile load failure on the global manager.
func RecordLoadError() {
	globalManager.RecordLoadError()
}

// RecordLoadLatency observes a profile load latency on the global manager.
func RecordLoadLatency(ms float64) {
	globalManager.RecordLatency(OpLoad, ms)
}

// WriteTextfile exports the global registry to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
