// Package metrics provides Prometheus metrics for the pipeline service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Store metrics - collection reads, writes, default fallbacks
	storeReads     *prometheus.CounterVec
	storeWrites    *prometheus.CounterVec
	storeFallbacks *prometheus.CounterVec

	// Bus metrics - change fan-out health
	changesPublished *prometheus.CounterVec
	changesDropped   prometheus.Counter
	busSubscribers   prometheus.Gauge

	// Ingestion metrics - scan volume and dedupe drops
	recordsIngested   *prometheus.CounterVec
	duplicatesDropped *prometheus.CounterVec

	// Generation metrics - collaborator latency and failures
	generationLatency *prometheus.HistogramVec
	generationErrors  *prometheus.CounterVec

	// Queue metrics - generation request backlog
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics - generation pipeline throughput
	workerActive  prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "thebeat",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.storeReads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_reads_total",
			Help:      "Total number of collection reads by store key",
		},
		[]string{"key"},
	)

	m.storeWrites = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_writes_total",
			Help:      "Total number of collection writes by store key",
		},
		[]string{"key"},
	)

	m.storeFallbacks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_default_fallbacks_total",
			Help:      "Total number of reads served from default datasets (missing or corrupt value)",
		},
		[]string{"key"},
	)

	m.changesPublished = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "changes_published_total",
			Help:      "Total number of collection change notifications published",
		},
		[]string{"key"},
	)

	m.changesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "changes_dropped_total",
		Help:      "Total number of change notifications dropped on full subscriber buffers",
	})

	m.busSubscribers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bus_subscribers",
		Help:      "Current number of change feed subscribers",
	})

	m.recordsIngested = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "records_ingested_total",
			Help:      "Total number of records accepted by ingestion, by record kind",
		},
		[]string{"kind"},
	)

	m.duplicatesDropped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "duplicates_dropped_total",
			Help:      "Total number of scan records dropped as duplicates, by record kind",
		},
		[]string{"kind"},
	)

	m.generationLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "generation_duration_seconds",
			Help:      "Completion round-trip duration by generation kind",
			Buckets:   m.histogramBuckets,
		},
		[]string{"kind"},
	)

	m.generationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "generation_errors_total",
			Help:      "Total number of failed completion requests by generation kind",
		},
		[]string{"kind"},
	)

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the generation request queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum generation queue capacity",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization_ratio",
		Help:      "Queue utilization ratio (current size / capacity)",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Total number of generation requests enqueued",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Total number of generation requests dequeued",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of rejected enqueues (full or closed queue)",
	})

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_active_count",
		Help:      "Number of active generation workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_duration_seconds",
		Help:      "End-to-end processing duration of one generation request",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Total number of generation requests that failed in the worker",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by endpoint, method and status",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Store metrics functions.

// RecordStoreRead increments the read counter for a store key.
func RecordStoreRead(key string) {
	globalManager.storeReads.WithLabelValues(key).Inc()
}

// RecordStoreWrite increments the write counter for a store key.
func RecordStoreWrite(key string) {
	globalManager.storeWrites.WithLabelValues(key).Inc()
}

// RecordStoreFallback increments the default-dataset fallback counter for a key.
func RecordStoreFallback(key string) {
	globalManager.storeFallbacks.WithLabelValues(key).Inc()
}

// Bus metrics functions.

// RecordChangePublished increments the published-changes counter for a key.
func RecordChangePublished(key string) {
	globalManager.changesPublished.WithLabelValues(key).Inc()
}

// RecordChangeDropped increments the dropped-changes counter.
func RecordChangeDropped() {
	globalManager.changesDropped.Inc()
}

// UpdateSubscriberCount sets the current subscriber count.
func UpdateSubscriberCount(count int) {
	globalManager.busSubscribers.Set(float64(count))
}

// Ingestion metrics functions.

// RecordIngested adds accepted records to the ingestion counter for a kind.
func RecordIngested(kind string, count int) {
	globalManager.recordsIngested.WithLabelValues(kind).Add(float64(count))
}

// RecordDuplicateDropped increments the dedupe-drop counter for a kind.
func RecordDuplicateDropped(kind string) {
	globalManager.duplicatesDropped.WithLabelValues(kind).Inc()
}

// Generation metrics functions.

// ObserveGeneration records one successful completion round trip.
func ObserveGeneration(kind string, d time.Duration) {
	globalManager.generationLatency.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordGenerationError increments the failed-completion counter for a kind.
func RecordGenerationError(kind string) {
	globalManager.generationErrors.WithLabelValues(kind).Inc()
}

// Queue metrics functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordQueueEnqueueError increments the rejected-enqueue counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// Worker metrics functions.

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// ObserveWorkerProcessing records the processing duration of one request.
func ObserveWorkerProcessing(d time.Duration) {
	globalManager.workerLatency.Observe(d.Seconds())
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// HTTP metrics functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
