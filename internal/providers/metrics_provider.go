package providers

import (
	"aurora/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncAlerts()
	IncRateLimited()
	IncStoreRecoveries(store string)
	ObservePersistenceDuration(duration time.Duration)
	SetRateLimiterKeys(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	alertsTotal         prometheus.Counter
	rateLimitedTotal    prometheus.Counter
	storeRecoveries     *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	rateLimiterKeys     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncAlerts() {
	m.alertsTotal.Inc()
}

func (m *MetricsProvider) IncRateLimited() {
	m.rateLimitedTotal.Inc()
}

func (m *MetricsProvider) IncStoreRecoveries(store string) {
	m.storeRecoveries.WithLabelValues(store).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRateLimiterKeys(count int) {
	m.rateLimiterKeys.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

const metricsNamespace = "aurora"

// NewMetricsProvider registers the collectors served at /metrics, or hands
// out a no-op sink when metrics are disabled.
func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}
	return newMetricsProvider(prometheus.DefaultRegisterer)
}

func newMetricsProvider(reg prometheus.Registerer) *MetricsProvider {
	factory := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{Namespace: metricsNamespace, Name: name, Help: help})
	}

	return &MetricsProvider{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "HTTP requests by endpoint and status class",
		}, []string{"endpoint", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits:        counter("session_cache_hits_total", "Session lookups that found a live session"),
		cacheMisses:      counter("session_cache_misses_total", "Session lookups for unknown or expired tokens"),
		alertsTotal:      counter("alerts_total", "Alerts accepted and stored"),
		rateLimitedTotal: counter("alerts_rate_limited_total", "Alert submissions rejected by the cooldown"),

		storeRecoveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "store_recoveries_total",
			Help:      "Corrupt or unreadable store files rebuilt at runtime",
		}, []string{"store"}),
		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "persistence_duration_seconds",
			Help:      "Time spent writing store files",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		rateLimiterKeys: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rate_limiter_keys",
			Help:      "Client keys currently held by the alert cooldown",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncAlerts()                                       {}
func (n *noopMetrics) IncRateLimited()                                  {}
func (n *noopMetrics) IncStoreRecoveries(_ string)                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetRateLimiterKeys(_ int)                         {}
