// Package telemetry provides application-level observability for the model registry.
//
// All metrics are registered against the default Prometheus registry and served on the
// side-channel HTTP server started by main.go:
//
//	GET http(s)://<host>:<MR_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090. The endpoint returns data in the Prometheus text exposition format
// and is intended to be scraped by a Prometheus server every 15–60 seconds. It is NOT
// served by the Gin router so it stays off the public ingress path.
//
// HTTP metrics use c.FullPath() (route template such as /api/v1/models/:id) rather than
// the raw request URL to prevent unbounded label cardinality from user-supplied path
// segments such as model identifiers or file names.
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics — labelled by method, route template, and status code.
//
// Example PromQL queries:
//   - Request rate (req/s, 5 m window):  rate(http_requests_total[5m])
//   - Error rate (%):                    sum(rate(http_requests_total{status=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) * 100
//   - p99 latency per route:             histogram_quantile(0.99, sum by (path, le) (rate(http_request_duration_seconds_bucket[5m])))
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Registry domain metrics — recorded by the model API handlers.
//
// VersionUploadsTotal is a CounterVec with label {task_type} incremented once per
// successfully registered model version. ModelArchiveDownloadsTotal counts completed
// (or aborted mid-stream) archive exports; FileDownloadsTotal counts single-file
// fetches. VisibilityDenialsTotal tracks read requests that were collapsed to a
// uniform 404 by the visibility policy — the externally hidden outcome kept visible
// to operators.
//
// Example PromQL queries:
//   - Upload rate by task:      sum by (task_type) (rate(version_uploads_total[1h]))
//   - Denial ratio:             rate(visibility_denials_total[1h]) / rate(http_requests_total[1h])
var (
	VersionUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "version_uploads_total",
			Help: "Total number of model versions uploaded, by task type.",
		},
		[]string{"task_type"},
	)

	ModelArchiveDownloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_archive_downloads_total",
			Help: "Total number of model archive (ZIP) downloads started.",
		},
	)

	FileDownloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_downloads_total",
			Help: "Total number of single model file downloads.",
		},
	)

	VisibilityDenialsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visibility_denials_total",
			Help: "Total number of read requests denied by the visibility policy and reported as not found.",
		},
	)
)

// DBOpenConnections is a Gauge that tracks the number of open connections currently
// held by the sql.DB connection pool. It is sampled every 30 seconds by
// StartDBStatsCollector rather than per-request to avoid the overhead of sql.DB.Stats().
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB connection
// pool statistics every 30 seconds and updates the DBOpenConnections gauge.
// The goroutine exits cleanly when the database becomes unreachable (db.Ping fails),
// which happens automatically when the application shuts down and defers db.Close().
//
// Call this once, immediately after db.Connect() succeeds in main.go.
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()
}
