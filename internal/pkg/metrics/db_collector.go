package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecordDBPoolMetrics updates connection gauges for the named pool. The
// application runs one pool per credential level, so the name distinguishes
// the primary pool from the privileged one.
func RecordDBPoolMetrics(name string, pool *pgxpool.Pool) {
	stats := pool.Stat()

	DBPoolConnections.WithLabelValues(name, "in_use").Set(float64(stats.AcquiredConns()))
	DBPoolConnections.WithLabelValues(name, "idle").Set(float64(stats.IdleConns()))
	DBPoolConnections.WithLabelValues(name, "max").Set(float64(stats.MaxConns()))
}
