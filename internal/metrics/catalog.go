package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics.
var (
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "starfield",
			Name:      "catalog_requests_total",
			Help:      "Total number of catalog queries",
		},
		[]string{"status"},
	)

	CatalogRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "starfield",
			Name:      "catalog_request_duration_seconds",
			Help:      "Catalog query duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"table"},
	)

	CatalogRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "starfield",
			Name:      "catalog_rows_total",
			Help:      "Total catalog rows returned",
		},
	)

	CatalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "starfield",
			Name:      "catalog_cache_total",
			Help:      "Catalog result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	StarmapPoints = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "starfield",
			Name:      "starmap_points",
			Help:      "Number of rendered points per star map",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog Prometheus metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogRequestsTotal)
	prometheus.MustRegister(CatalogRequestDuration)
	prometheus.MustRegister(CatalogRowsTotal)
	prometheus.MustRegister(CatalogCacheTotal)
	prometheus.MustRegister(StarmapPoints)
	catalogMetricsRegistered = true
}
