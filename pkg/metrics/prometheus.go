// Package metrics provides Prometheus metrics for the rinkcast forecast engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the forecast engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - one forecast per matchup per invocation
	matchupsForecast prometheus.Counter
	matchupsSkipped  prometheus.Counter
	trialsSimulated  prometheus.Counter
	rankingsBuilt    prometheus.Counter
	rankingsEmpty    prometheus.Counter

	// Data Quality Metrics - degraded fields never fail, but they are counted
	fieldsDefaulted prometheus.Counter

	// Performance Metrics
	simulationLatency prometheus.Histogram
	forecastLatency   prometheus.Histogram

	// Snapshot Metrics
	teamsLoaded   prometheus.Gauge
	playersLoaded prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rinkcast",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.matchupsForecast = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matchups_forecast_total",
		Help:      "Total number of matchups successfully forecast",
	})

	m.matchupsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matchups_skipped_total",
		Help:      "Total number of matchups skipped due to missing team data",
	})

	m.trialsSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trials_simulated_total",
		Help:      "Total number of Monte Carlo trials drawn across all matchups",
	})

	m.rankingsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_built_total",
		Help:      "Total number of player effectiveness rankings produced",
	})

	m.rankingsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_empty_total",
		Help:      "Total number of matchups with no eligible skater data",
	})

	m.fieldsDefaulted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fields_defaulted_total",
		Help:      "Total number of missing or malformed record fields degraded to defaults",
	})

	m.simulationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_latency_milliseconds",
		Help:      "Histogram of Monte Carlo simulation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.forecastLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "forecast_latency_milliseconds",
		Help:      "Histogram of end-to-end matchup forecast latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.teamsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_teams",
		Help:      "Number of team records in the current snapshot",
	})

	m.playersLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_players",
		Help:      "Number of player records in the current snapshot",
	})
}

// RecordMatchupForecast increments the matchups forecast counter.
func RecordMatchupForecast() {
	globalManager.matchupsForecast.Inc()
}

// RecordMatchupSkipped increments the skipped matchups counter.
func RecordMatchupSkipped() {
	globalManager.matchupsSkipped.Inc()
}

// RecordTrialsSimulated adds the number of trials drawn for one simulation.
func RecordTrialsSimulated(n int) {
	globalManager.trialsSimulated.Add(float64(n))
}

// RecordRankingBuilt increments the rankings built counter.
func RecordRankingBuilt() {
	globalManager.rankingsBuilt.Inc()
}

// RecordRankingEmpty increments the empty rankings counter.
func RecordRankingEmpty() {
	globalManager.rankingsEmpty.Inc()
}

// RecordFieldDefaulted increments the degraded-field counter.
func RecordFieldDefaulted() {
	globalManager.fieldsDefaulted.Inc()
}

// RecordSimulationLatency records simulation latency in milliseconds.
func RecordSimulationLatency(latencyMs float64) {
	globalManager.simulationLatency.Observe(latencyMs)
}

// RecordForecastLatency records end-to-end forecast latency in milliseconds.
func RecordForecastLatency(latencyMs float64) {
	globalManager.forecastLatency.Observe(latencyMs)
}

// UpdateSnapshotSizes sets the snapshot table size gauges.
func UpdateSnapshotSizes(teams, players int) {
	globalManager.teamsLoaded.Set(float64(teams))
	globalManager.playersLoaded.Set(float64(players))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
