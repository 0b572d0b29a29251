// Package metrics exposes the Prometheus instrumentation for the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks HTTP request latency per route and status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fahrgeld_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// SettlementsComputed counts settlement computations by mode.
	SettlementsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fahrgeld_settlements_computed_total",
			Help: "Number of settlement computations, by mode.",
		},
		[]string{"mode"},
	)

	// SnapshotsSaved counts persisted settlement snapshots by mode.
	SnapshotsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fahrgeld_snapshots_saved_total",
			Help: "Number of settlement snapshots saved, by mode.",
		},
		[]string{"mode"},
	)
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
