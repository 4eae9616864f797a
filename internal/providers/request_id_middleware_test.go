package providers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestTestLogger struct {
	cacheTestLogger
	mu      sync.Mutex
	entries map[TypeEnum][]string
}

func (l *requestTestLogger) Infof(t TypeEnum, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entries == nil {
		l.entries = map[TypeEnum][]string{}
	}
	l.entries[t] = append(l.entries[t], format)
}

func TestRequestLogMiddleware_GeneratesId(t *testing.T) {
	logger := &requestTestLogger{}
	var seen string
	h := RequestLogMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIdFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	id := rr.Header().Get(RequestIdHeader)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, seen)
	assert.Len(t, logger.entries[TypeGet], 1)
}

func TestRequestLogMiddleware_KeepsClientId(t *testing.T) {
	logger := &requestTestLogger{}
	h := RequestLogMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/send_alert", nil)
	req.Header.Set(RequestIdHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIdHeader))
	assert.Len(t, logger.entries[TypePost], 1)
}

func TestRequestLogMiddleware_ReplacesOversizedId(t *testing.T) {
	logger := &requestTestLogger{}
	h := RequestLogMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIdHeader, strings.Repeat("x", 65))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Len(t, rr.Header().Get(RequestIdHeader), 36)
}

func TestRequestIdFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", RequestIdFromContext(req.Context()))
}
