package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analytics service.
type Metrics struct {
	DatasetRows        prometheus.Gauge
	DatasetRowsDropped prometheus.Counter

	// Derived-view query metrics.
	QueryRequests *prometheus.CounterVec   // labels: view={trend,environment,habitat,geo,summary}, outcome={success,invalid,error}
	QueryDuration *prometheus.HistogramVec // labels: view

	// Load-time geocoding enrichment metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
	CountriesEnriched  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hawksbill",
			Name:      "dataset_rows",
			Help:      "Number of observations in the loaded dataset.",
		}),
		DatasetRowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hawksbill",
			Name:      "dataset_rows_dropped_total",
			Help:      "Rows discarded at load time for missing or unparseable years.",
		}),
		QueryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hawksbill",
			Name:      "query_requests_total",
			Help:      "Derived-view computations by view and outcome.",
		}, []string{"view", "outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hawksbill",
			Name:      "query_duration_seconds",
			Help:      "Duration of derived-view computations.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"view"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hawksbill",
			Name:      "geocode_requests_total",
			Help:      "Reverse-geocode lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hawksbill",
			Name:      "geocode_cache_total",
			Help:      "Reverse-geocode cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hawksbill",
			Name:      "geocode_api_duration_seconds",
			Help:      "Reverse-geocode API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hawksbill",
			Name:      "geocode_enabled",
			Help:      "1 when load-time country enrichment is enabled, 0 otherwise.",
		}),
		CountriesEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hawksbill",
			Name:      "countries_enriched_total",
			Help:      "Observations whose country was filled by reverse geocoding.",
		}),
	}

	prometheus.MustRegister(
		m.DatasetRows,
		m.DatasetRowsDropped,
		m.QueryRequests,
		m.QueryDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.CountriesEnriched,
	)

	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetRows:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hawksbill", Name: "dataset_rows"}),
		DatasetRowsDropped: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hawksbill", Name: "dataset_rows_dropped_total"}),
		QueryRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hawksbill", Name: "query_requests_total"}, []string{"view", "outcome"}),
		QueryDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "hawksbill", Name: "query_duration_seconds"}, []string{"view"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hawksbill", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hawksbill", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hawksbill", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hawksbill", Name: "geocode_enabled"}),
		CountriesEnriched:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hawksbill", Name: "countries_enriched_total"}),
	}
}
