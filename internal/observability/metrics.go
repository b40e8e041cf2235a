package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard pipeline and document fetcher.
type Metrics struct {
	RegistryRows      prometheus.Counter
	RegistryRowErrors prometheus.Counter
	UnitsAggregated   prometheus.Counter
	UnitsUnmatched    prometheus.Counter
	RunDuration       prometheus.Histogram

	// Document-fetch metrics.
	DocketFetches     *prometheus.CounterVec // labels: outcome={success,error,empty}
	DocketCache       *prometheus.CounterVec // labels: result={hit,miss}
	FetchDuration     prometheus.Histogram
	DocumentsFiltered prometheus.Counter // industry-wide notices excluded
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RegistryRows,
		m.RegistryRowErrors,
		m.UnitsAggregated,
		m.UnitsUnmatched,
		m.RunDuration,
		m.DocketFetches,
		m.DocketCache,
		m.FetchDuration,
		m.DocumentsFiltered,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RegistryRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "registry_rows_total",
			Help:      "Total registry rows read from the master table.",
		}),
		RegistryRowErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "registry_row_errors_total",
			Help:      "Registry rows rejected by validation.",
		}),
		UnitsAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "units_aggregated_total",
			Help:      "Units for which capacity metrics were computed.",
		}),
		UnitsUnmatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "units_unmatched_total",
			Help:      "Registry units with no matching daily-feed series.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plant_dashboard",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-aggregate-write run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DocketFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "docket_fetches_total",
			Help:      "ADAMS docket searches by outcome.",
		}, []string{"outcome"}),
		DocketCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "docket_cache_total",
			Help:      "Docket search cache lookups by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plant_dashboard",
			Name:      "docket_fetch_duration_seconds",
			Help:      "ADAMS search request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		DocumentsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plant_dashboard",
			Name:      "documents_filtered_total",
			Help:      "Documents excluded as industry-wide notices.",
		}),
	}
}
