// Package metrics provides Prometheus metrics for the matchday
// simulation service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// ratingBuckets spans the working clamp of the rating scale.
var ratingBuckets = []float64{4.5, 5.0, 5.5, 6.0, 6.3, 6.6, 6.9, 7.3, 7.7, 8.1, 8.5, 9.0, 9.3, 9.9} //nolint:gochecknoglobals // static bucket layout

// Manager manages all Prometheus metrics for the simulation service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core business metrics
	matchesSimulated   prometheus.Counter
	eventsGenerated    prometheus.Counter
	simulationDuration prometheus.Histogram
	finalRating        prometheus.Histogram
	duplicateFixtures  prometheus.Counter
	validationFailures *prometheus.CounterVec
	resultsRecorded    prometheus.Counter

	// Operational health metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueRejections  prometheus.Counter
	queueDrops       prometheus.Counter

	// Worker metrics
	workerActiveCount prometheus.Gauge
	workerLatency     prometheus.Histogram
	workerErrors      *prometheus.CounterVec

	// Store metrics
	participantsTracked prometheus.Gauge
	storeRecordLatency  prometheus.Histogram
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
		namespace:        "matchday",
		subsystem:        "simulation",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_simulated_total",
		Help:      "Total number of completed match simulations",
	})

	m.eventsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_generated_total",
		Help:      "Total number of match events produced by the generator",
	})

	m.simulationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "simulation_duration_milliseconds",
		Help:      "Histogram of full pipeline duration per match in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.finalRating = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "final_rating",
		Help:      "Distribution of final normalized ratings",
		Buckets:   ratingBuckets,
	})

	m.duplicateFixtures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_fixtures_total",
		Help:      "Total number of fixture submissions dropped as already simulated",
	})

	m.validationFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_failures_total",
			Help:      "Total number of rejected inputs by kind",
		},
		[]string{"kind"},
	)

	m.resultsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "results_recorded_total",
		Help:      "Total number of rating results written to the store",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of fixtures waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum number of fixtures the queue accepts",
	})

	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_utilization",
		Help:      "Queue fill ratio between 0 and 1",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueues_total",
		Help:      "Total number of fixtures accepted onto the queue",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeues_total",
		Help:      "Total number of fixtures handed to workers",
	})

	m.queueRejections = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_rejections_total",
		Help:      "Total number of fixtures rejected at enqueue",
	})

	m.queueDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_drops_total",
		Help:      "Total number of fixtures pulled off the queue but never delivered to a worker",
	})

	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_active_count",
		Help:      "Current number of simulation workers",
	})

	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_latency_milliseconds",
		Help:      "Histogram of per-fixture worker processing time in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "worker_errors_total",
			Help:      "Total number of worker failures by stage",
		},
		[]string{"stage"},
	)

	m.participantsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants_tracked",
		Help:      "Number of participants with at least one recorded rating",
	})

	m.storeRecordLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_record_latency_milliseconds",
		Help:      "Histogram of rating store write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordMatchSimulated increments the completed simulation counter.
func RecordMatchSimulated() {
	globalManager.matchesSimulated.Inc()
}

// RecordEventsGenerated adds to the generated events counter.
func RecordEventsGenerated(n int) {
	globalManager.eventsGenerated.Add(float64(n))
}

// RecordSimulationDuration records one full pipeline run in milliseconds.
func RecordSimulationDuration(latencyMs float64) {
	globalManager.simulationDuration.Observe(latencyMs)
}

// RecordFinalRating records one normalized rating.
func RecordFinalRating(rating float64) {
	globalManager.finalRating.Observe(rating)
}

// RecordDuplicateFixture increments the dropped duplicate counter.
func RecordDuplicateFixture() {
	globalManager.duplicateFixtures.Inc()
}

// RecordValidationFailure increments the rejected-input counter for a kind.
func RecordValidationFailure(kind string) {
	globalManager.validationFailures.WithLabelValues(kind).Inc()
}

// RecordResultRecorded increments the stored results counter.
func RecordResultRecorded() {
	globalManager.resultsRecorded.Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue fill ratio.
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

// RecordQueueRejection increments the rejected-enqueue counter.
func RecordQueueRejection() {
	globalManager.queueRejections.Inc()
}

// RecordQueueDrop increments the undelivered-dequeue counter.
func RecordQueueDrop() {
	globalManager.queueDrops.Inc()
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerLatency records per-fixture worker time in milliseconds.
func RecordWorkerLatency(latencyMs float64) {
	globalManager.workerLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker failure counter for a stage.
func RecordWorkerError(stage string) {
	globalManager.workerErrors.WithLabelValues(stage).Inc()
}

// UpdateParticipantsTracked sets the tracked participant count.
func UpdateParticipantsTracked(count int) {
	globalManager.participantsTracked.Set(float64(count))
}

// RecordStoreRecordLatency records one store write in milliseconds.
func RecordStoreRecordLatency(latencyMs float64) {
	globalManager.storeRecordLatency.Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
