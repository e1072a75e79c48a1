// Package metrics provides Prometheus metrics for the match engine service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Score histogram buckets cover the full 0-100 match score range.
var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} //nolint:gochecknoglobals // shared bucket layout

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring metrics
	matchesComputed prometheus.Counter
	goodMatches     prometheus.Counter
	matchScores     prometheus.Histogram
	scoringLatency  prometheus.Histogram

	// Retrieval / pool source metrics
	poolSourceErrors *prometheus.CounterVec
	jobCacheHits     prometheus.Counter
	jobCacheMisses   prometheus.Counter
	activeJobPool    prometheus.Gauge
	candidatePool    prometheus.Gauge

	// Batch metrics
	batchRuns         prometheus.Counter
	batchRunDuration  prometheus.Histogram
	batchUsersMatched prometheus.Gauge
	batchUserFailures prometheus.Counter
	workerCount       prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry so default Go collectors stay out of
// the way unless main registers them explicitly.
var (
	globalManager  *Manager              //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchd",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initMetrics()

	return m
}

func (m *Manager) initMetrics() {
	auto := promauto.With(m.registry)

	m.matchesComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_computed_total",
		Help:      "Total number of (profile, job) pairs scored",
	})
	m.goodMatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "good_matches_total",
		Help:      "Total number of scored pairs at or above the good-match threshold",
	})
	m.matchScores = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_score",
		Help:      "Distribution of overall match scores",
		Buckets:   scoreBuckets,
	})
	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of per-pair scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.poolSourceErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_source_errors_total",
		Help:      "Total pool source failures by source and operation",
	}, []string{"source", "op"})
	m.jobCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "job_cache_hits_total",
		Help:      "Total active-job pool cache hits",
	})
	m.jobCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "job_cache_misses_total",
		Help:      "Total active-job pool cache misses",
	})
	m.activeJobPool = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_job_pool_size",
		Help:      "Size of the most recently fetched active-job pool",
	})
	m.candidatePool = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidate_pool_size",
		Help:      "Size of the most recently fetched candidate pool",
	})

	m.batchRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_runs_total",
		Help:      "Total daily-match batch runs",
	})
	m.batchRunDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_run_duration_seconds",
		Help:      "Wall-clock duration of daily-match batch runs",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})
	m.batchUsersMatched = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_users_with_matches",
		Help:      "Users with at least one digest-worthy match in the last batch run",
	})
	m.batchUserFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_user_failures_total",
		Help:      "Users skipped during batch runs because their data could not be scored",
	})
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_worker_count",
		Help:      "Configured size of the batch worker pool",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the registry backing the global manager, for promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

func RecordMatchComputed(score float64, good bool) {
	globalManager.matchesComputed.Inc()
	globalManager.matchScores.Observe(score)
	if good {
		globalManager.goodMatches.Inc()
	}
}

func RecordScoringLatency(ms float64)  { globalManager.scoringLatency.Observe(ms) }
func RecordPoolSourceError(source, op string) {
	globalManager.poolSourceErrors.WithLabelValues(source, op).Inc()
}
func RecordJobCacheHit()             { globalManager.jobCacheHits.Inc() }
func RecordJobCacheMiss()            { globalManager.jobCacheMisses.Inc() }
func UpdateActiveJobPoolSize(n int)  { globalManager.activeJobPool.Set(float64(n)) }
func UpdateCandidatePoolSize(n int)  { globalManager.candidatePool.Set(float64(n)) }
func RecordBatchRun(seconds float64) {
	globalManager.batchRuns.Inc()
	globalManager.batchRunDuration.Observe(seconds)
}
func UpdateBatchUsersWithMatches(n int) { globalManager.batchUsersMatched.Set(float64(n)) }
func RecordBatchUserFailure()           { globalManager.batchUserFailures.Inc() }
func UpdateWorkerCount(n int)           { globalManager.workerCount.Set(float64(n)) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}
