package providers

import (
	"aurora/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapRegistry points the default registerer at a fresh registry for code
// paths that register globally.
func swapRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGather := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGather
	})
	return reg
}

func TestNewMetricsProvider_Disabled(t *testing.T) {
	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: false}})
	require.IsType(t, &noopMetrics{}, m)

	assert.NotPanics(t, func() {
		m.IncRequestsTotal("/api/send_alert", 200)
		m.ObserveRequestDuration("/api/send_alert", time.Millisecond)
		m.IncCacheHits()
		m.IncCacheMisses()
		m.IncAlerts()
		m.IncRateLimited()
		m.IncStoreRecoveries("users")
		m.ObservePersistenceDuration(time.Millisecond)
		m.SetRateLimiterKeys(10)
	})
}

func TestNewMetricsProvider_EnabledRegistersGlobally(t *testing.T) {
	reg := swapRegistry(t)

	m := NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}})
	require.IsType(t, &MetricsProvider{}, m)
	m.IncAlerts()

	n, err := testutil.GatherAndCount(reg, "aurora_alerts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetricsProvider_AlertPath(t *testing.T) {
	m := newMetricsProvider(prometheus.NewRegistry())

	m.IncAlerts()
	m.IncAlerts()
	m.IncRateLimited()
	m.SetRateLimiterKeys(42)
	m.SetRateLimiterKeys(7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.alertsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimitedTotal))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rateLimiterKeys))
}

func TestMetricsProvider_RequestsByStatusClass(t *testing.T) {
	m := newMetricsProvider(prometheus.NewRegistry())

	m.IncRequestsTotal("/api/send_alert", 200)
	m.IncRequestsTotal("/api/send_alert", 429)
	m.IncRequestsTotal("/api/send_alert", 400)
	m.IncRequestsTotal("other", 404)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/send_alert", "2xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/send_alert", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("other", "4xx")))
}

func TestMetricsProvider_StoreAndSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := newMetricsProvider(reg)

	m.IncStoreRecoveries("users")
	m.IncStoreRecoveries("counter")
	m.IncStoreRecoveries("users")
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(3 * time.Millisecond)
	m.ObserveRequestDuration("/health", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeRecoveries.WithLabelValues("users")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeRecoveries.WithLabelValues("counter")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"aurora_store_recoveries_total",
		"aurora_session_cache_hits_total",
		"aurora_persistence_duration_seconds",
		"aurora_request_duration_seconds",
	} {
		assert.True(t, names[want], want)
	}
}

func TestHttpStatusBucket(t *testing.T) {
	for code, want := range map[int]string{
		101: "1xx", 200: "2xx", 204: "2xx", 302: "3xx",
		401: "4xx", 429: "4xx", 500: "5xx", 503: "5xx",
	} {
		assert.Equal(t, want, httpStatusBucket(code), "code %d", code)
	}
}
