// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	APIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses by error category",
		},
		[]string{"route", "category"},
	)

	SearchResultsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_results_returned",
			Help:    "Number of items returned per search page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"entity"},
	)

	StoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_queries_total",
			Help: "Total number of document store requests by operation and outcome",
		},
		[]string{"operation", "status"},
	)
)
