// Package metrics provides Prometheus metrics for the heropick service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels shared by counters that split on outcome.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultCached  = "cached"
	ResultSkipped = "skipped"
)

// Manager owns every metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Recommendation path
	recommendations       *prometheus.CounterVec
	recommendationLatency prometheus.Histogram
	candidatesScored      prometheus.Counter
	cacheHits             prometheus.Counter
	cacheMisses           prometheus.Counter

	// Loaded data
	dataReloads     *prometheus.CounterVec
	loadedHeroes    prometheus.Gauge
	poolSize        prometheus.Gauge
	matchupHeroes   prometheus.Gauge
	lastReloadUnix  prometheus.Gauge
	reloadDurations prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// Upstream statistics provider
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	upstreamRetries  prometheus.Counter

	// Sync queue and workers
	syncJobs             *prometheus.CounterVec
	queueSize            prometheus.Gauge
	queueCapacity        prometheus.Gauge
	queueEnqueued        prometheus.Counter
	queueDequeued        prometheus.Counter
	queueEnqueueErrors   prometheus.Counter
	workerActive         prometheus.Gauge
	workerProcessLatency prometheus.Histogram

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "heropick",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.recommendations = m.counterVec("recommendations_total", "Recommendation requests by result", "result")
	m.recommendationLatency = m.histogram("recommendation_latency_milliseconds", "Time to rank the pool in milliseconds")
	m.candidatesScored = m.counter("candidates_scored_total", "Pool heroes scored")
	m.cacheHits = m.counter("cache_hits_total", "Recommendation cache hits")
	m.cacheMisses = m.counter("cache_misses_total", "Recommendation cache misses")

	m.dataReloads = m.counterVec("data_reloads_total", "Data set reloads by result", "result")
	m.loadedHeroes = m.gauge("catalog_heroes", "Heroes in the loaded catalog")
	m.poolSize = m.gauge("pool_heroes", "Heroes in the loaded pool")
	m.matchupHeroes = m.gauge("matchup_heroes", "Heroes with a matchup record")
	m.lastReloadUnix = m.gauge("data_last_reload_unix", "Unix time of the last successful reload")
	m.reloadDurations = m.histogram("data_reload_duration_milliseconds", "Data reload duration in milliseconds")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")

	m.upstreamRequests = m.counterVec("upstream_requests_total", "Upstream API requests by operation and status", "operation", "status_code")
	m.upstreamLatency = m.histogramVec("upstream_latency_milliseconds", "Upstream API latency in milliseconds", "operation")
	m.upstreamRetries = m.counter("upstream_retries_total", "Upstream API retries")

	m.syncJobs = m.counterVec("sync_jobs_total", "Matchup fetch jobs by result", "result")
	m.queueSize = m.gauge("queue_size", "Fetch jobs waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Fetch queue capacity")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Fetch jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Fetch jobs dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Fetch jobs rejected by the queue")
	m.workerActive = m.gauge("worker_active_count", "Workers currently running")
	m.workerProcessLatency = m.histogram("worker_processing_latency_milliseconds", "Per-job processing latency in milliseconds")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes in use")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordRecommendation counts one recommendation by result.
func RecordRecommendation(result string) {
	globalManager.recommendations.WithLabelValues(result).Inc()
}

// RecordRecommendationLatency records ranking latency in milliseconds.
func RecordRecommendationLatency(latencyMs float64) {
	globalManager.recommendationLatency.Observe(latencyMs)
}

// RecordCandidatesScored adds n scored candidates.
func RecordCandidatesScored(n int) {
	globalManager.candidatesScored.Add(float64(n))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordDataReload counts a reload and, on success, its duration.
func RecordDataReload(result string, durationMs float64, unix int64) {
	globalManager.dataReloads.WithLabelValues(result).Inc()
	if result == ResultOK {
		globalManager.reloadDurations.Observe(durationMs)
		globalManager.lastReloadUnix.Set(float64(unix))
	}
}

// UpdateDataSize sets the loaded data gauges.
func UpdateDataSize(heroes, pool, matchups int) {
	globalManager.loadedHeroes.Set(float64(heroes))
	globalManager.poolSize.Set(float64(pool))
	globalManager.matchupHeroes.Set(float64(matchups))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordUpstreamRequest records one upstream call.
func RecordUpstreamRequest(operation, statusCode string, latencyMs float64) {
	globalManager.upstreamRequests.WithLabelValues(operation, statusCode).Inc()
	globalManager.upstreamLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordUpstreamRetry increments the retry counter.
func RecordUpstreamRetry() { globalManager.upstreamRetries.Inc() }

// RecordSyncJob counts one fetch job by result.
func RecordSyncJob(result string) {
	globalManager.syncJobs.WithLabelValues(result).Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueued.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeued.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessingLatency records per-job processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessLatency.Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the heap bytes in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
