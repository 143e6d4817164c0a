package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// place search service.
type Metrics struct {
	SearchesTotal  *prometheus.CounterVec // labels: outcome={ok,not_found,error,empty}
	SearchDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram

	// Summary fetch metrics.
	SummaryRequests *prometheus.CounterVec // labels: outcome={success,error,empty}

	// Origin location metrics.
	LocationRequests *prometheus.CounterVec // labels: outcome={success,error}

	// Audit stream metrics.
	OutcomesPublished prometheus.Counter
	PublishErrors     prometheus.Counter
	AuditEnabled      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SearchesTotal,
		m.SearchDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.SummaryRequests,
		m.LocationRequests,
		m.OutcomesPublished,
		m.PublishErrors,
		m.AuditEnabled,
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
		SearchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "searches_total",
			Help:      "Completed search invocations by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "place_search",
			Name:      "search_duration_seconds",
			Help:      "Duration of a complete search chain.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "place_search",
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SummaryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "summary_requests_total",
			Help:      "Encyclopedia summary requests by outcome.",
		}, []string{"outcome"}),
		LocationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "location_requests_total",
			Help:      "Origin location lookups by outcome.",
		}, []string{"outcome"}),
		OutcomesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "outcomes_published_total",
			Help:      "Search outcomes published to the audit topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "place_search",
			Name:      "publish_errors_total",
			Help:      "Failed audit publishes.",
		}),
		AuditEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "place_search",
			Name:      "audit_enabled",
			Help:      "1 when the Kafka audit stream is enabled, 0 otherwise.",
		}),
	}
}
