// Package metrics provides Prometheus metrics for the LitLoom recommender.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Recommendation path
	recommendationsServed *prometheus.CounterVec
	recommendationErrors  prometheus.Counter
	selectorLatency       *prometheus.HistogramVec
	poolSize              prometheus.Gauge

	// Harvest path
	booksScraped   prometheus.Counter
	scrapeLatency  prometheus.Histogram
	scrapeErrors   prometheus.Counter
	harvestErrors  prometheus.Counter
	duplicateLinks prometheus.Counter
	jobsEnqueued   prometheus.Counter
	jobsProcessed  prometheus.Counter
	jobLatency     prometheus.Histogram
	queueSize      prometheus.Gauge
	workerCount    prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance backed by a custom registry, keeping the
// default Go collectors out of /healthz exposition.
var (
	globalManager  *Manager            //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "litloom",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.recommendationsServed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Recommendation requests completed, by selection strategy.",
	}, []string{"strategy"})

	m.recommendationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendation_errors_total",
		Help:      "Recommendation requests that failed.",
	})

	m.selectorLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selector_latency_ms",
		Help:      "Time spent in subset selection, by strategy.",
		Buckets:   m.histogramBuckets,
	}, []string{"strategy"})

	m.poolSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "book_pool_size",
		Help:      "Available book records in the repository.",
	})

	m.booksScraped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "books_scraped_total",
		Help:      "Book pages fetched and parsed successfully.",
	})

	m.scrapeLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scrape_latency_ms",
		Help:      "Time to fetch and parse one catalog page.",
		Buckets:   m.histogramBuckets,
	})

	m.scrapeErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scrape_errors_total",
		Help:      "Catalog pages that could not be fetched or parsed.",
	})

	m.harvestErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "harvest_errors_total",
		Help:      "Harvested records that failed to persist.",
	})

	m.duplicateLinks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_links_total",
		Help:      "Catalog links skipped as already seen.",
	})

	m.jobsEnqueued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "harvest_jobs_enqueued_total",
		Help:      "Fetch jobs accepted onto the harvest queue.",
	})

	m.jobsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "harvest_jobs_processed_total",
		Help:      "Fetch jobs completed end to end.",
	})

	m.jobLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "harvest_job_latency_ms",
		Help:      "Time to process one fetch job.",
		Buckets:   m.histogramBuckets,
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "harvest_queue_size",
		Help:      "Fetch jobs currently buffered.",
	})

	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "harvest_worker_count",
		Help:      "Harvest workers currently running.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration, by endpoint, method, and status.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers over the global manager.

// RecordRecommendation counts one served recommendation and its selector
// latency.
func RecordRecommendation(strategy string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.recommendationsServed.WithLabelValues(strategy).Inc()
	globalManager.selectorLatency.WithLabelValues(strategy).Observe(latencyMs)
}

// RecordRecommendationError counts one failed recommendation request.
func RecordRecommendationError() {
	if globalManager.enabled {
		globalManager.recommendationErrors.Inc()
	}
}

// UpdatePoolSize sets the available-record gauge.
func UpdatePoolSize(size int) {
	if globalManager.enabled {
		globalManager.poolSize.Set(float64(size))
	}
}

// RecordBookScraped counts one successful scrape and its latency.
func RecordBookScraped(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.booksScraped.Inc()
	globalManager.scrapeLatency.Observe(latencyMs)
}

// RecordScrapeError counts one failed catalog fetch/parse.
func RecordScrapeError() {
	if globalManager.enabled {
		globalManager.scrapeErrors.Inc()
	}
}

// RecordHarvestError counts one record that failed to persist.
func RecordHarvestError() {
	if globalManager.enabled {
		globalManager.harvestErrors.Inc()
	}
}

// RecordDuplicateLink counts one link skipped as already seen.
func RecordDuplicateLink() {
	if globalManager.enabled {
		globalManager.duplicateLinks.Inc()
	}
}

// RecordJobEnqueued counts one job accepted onto the queue.
func RecordJobEnqueued() {
	if globalManager.enabled {
		globalManager.jobsEnqueued.Inc()
	}
}

// RecordJobProcessed counts one completed job and its latency.
func RecordJobProcessed(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsProcessed.Inc()
	globalManager.jobLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the buffered-jobs gauge.
func UpdateQueueSize(size int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(size))
	}
}

// UpdateWorkerCount sets the running-workers gauge.
func UpdateWorkerCount(count int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(count))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// GetRegistry returns the registry backing the global manager, for
// exposition handlers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
