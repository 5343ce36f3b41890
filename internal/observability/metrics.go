package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingest and assessment paths.
type Metrics struct {
	RecordsAdmitted prometheus.Counter
	RecordsRejected prometheus.Counter
	SinkPublished   prometheus.Counter
	SinkErrors      prometheus.Counter

	// Batch ingest metrics.
	IngestBatchSize     prometheus.Histogram
	IngestBatchDuration prometheus.Histogram

	// Risk assessment metrics.
	AssessmentDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrisk",
			Name:      "records_admitted_total",
			Help:      "Total accident records admitted to the store.",
		}),
		RecordsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrisk",
			Name:      "records_rejected_total",
			Help:      "Total accident records rejected during admission.",
		}),
		SinkPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrisk",
			Name:      "sink_published_total",
			Help:      "Total admitted records published to the Kafka sink.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadrisk",
			Name:      "sink_errors_total",
			Help:      "Total Kafka sink publish failures.",
		}),
		IngestBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadrisk",
			Name:      "ingest_batch_size",
			Help:      "Number of rows per ingest batch.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 200, 500, 1000},
		}),
		IngestBatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadrisk",
			Name:      "ingest_batch_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadrisk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a full area risk assessment.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadrisk",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadrisk",
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadrisk",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadrisk",
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsAdmitted,
		m.RecordsRejected,
		m.SinkPublished,
		m.SinkErrors,
		m.IngestBatchSize,
		m.IngestBatchDuration,
		m.AssessmentDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsAdmitted:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roadrisk", Name: "records_admitted_total"}),
		RecordsRejected:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roadrisk", Name: "records_rejected_total"}),
		SinkPublished:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roadrisk", Name: "sink_published_total"}),
		SinkErrors:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "roadrisk", Name: "sink_errors_total"}),
		IngestBatchSize:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "roadrisk", Name: "ingest_batch_size"}),
		IngestBatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "roadrisk", Name: "ingest_batch_duration_seconds"}),
		AssessmentDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "roadrisk", Name: "assessment_duration_seconds"}),
		GeocodeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "roadrisk", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "roadrisk", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "roadrisk", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "roadrisk", Name: "geocode_enabled"}),
	}
}
