package providers

import (
	"net/http"
	"time"
)

const otherEndpoint = "other"

// statusWriter remembers the first status written; an implicit 200 counts.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func endpointLabel(known map[string]struct{}, path string) string {
	if _, ok := known[path]; ok {
		return path
	}
	return otherEndpoint
}

// MetricsMiddleware counts and times API requests. Paths outside known are
// labelled "other" to keep scanners from inflating label cardinality.
func MetricsMiddleware(metrics MetricsProviderInterface, known map[string]struct{}, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		endpoint := endpointLabel(known, r.URL.Path)
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
