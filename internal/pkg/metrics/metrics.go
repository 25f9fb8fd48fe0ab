// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

var (
	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route", "status_code"},
	)

	// DBPoolConnections tracks database connection pool state.
	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Number of database connections by pool and state",
		},
		[]string{"pool", "state"},
	)

	// DirectoryLookups counts identity-directory API calls by operation and outcome.
	DirectoryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "lookups_total",
			Help:      "Identity directory API calls",
		},
		[]string{"operation", "outcome"},
	)

	// DirectoryLookupDuration tracks identity-directory API call latency.
	DirectoryLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "lookup_duration_seconds",
			Help:      "Identity directory API call duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)

// RecordDirectoryLookup records one directory API call.
func RecordDirectoryLookup(operation, outcome string, duration time.Duration) {
	DirectoryLookups.WithLabelValues(operation, outcome).Inc()
	DirectoryLookupDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
