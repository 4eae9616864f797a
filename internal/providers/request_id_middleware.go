package providers

import (
	"context"
	"github.com/google/uuid"
	"net/http"
	"time"
)

const RequestIdHeader = "X-Request-Id"

type requestIdKey struct{}

func RequestIdFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIdKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestLogMiddleware stamps every request with an id and logs it to the
// channel matching its method once the handler returns.
func RequestLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIdHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, id)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestIdKey{}, id)))

		logger.Infof(GetLogTypeByRequestType(r.Method), "%s %s %d %s id=%s", r.Method, r.URL.Path, sw.status, time.Since(start), id)
	})
}
