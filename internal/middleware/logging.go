package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jhensel/fahrgeld/internal/metrics"
)

// Logging logs every request and records its duration in the Prometheus
// request histogram.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		metrics.RequestDuration.WithLabelValues(
			r.Method, r.URL.Path, strconv.Itoa(status),
		).Observe(duration.Seconds())

		logFn := slog.Info
		if status >= 500 {
			logFn = slog.Error
		} else if status >= 400 {
			logFn = slog.Warn
		}
		logFn("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"user_id", GetUserID(r.Context()),
			"duration_ms", duration.Milliseconds(),
		)
	})
}
