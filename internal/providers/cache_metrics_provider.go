package providers

import "aurora/internal/structures"

// sessionCacheMetrics counts lookups against the session cache. A miss is an
// unknown, expired or evicted token.
type sessionCacheMetrics struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *sessionCacheMetrics) Get(key string) ([]byte, bool) {
	value, ok := c.CacheProviderInterface.Get(key)
	if ok {
		c.metrics.IncCacheHits()
		return value, true
	}
	c.metrics.IncCacheMisses()
	return nil, false
}

// NewInstrumentedCacheProvider builds the session cache, counting hits and
// misses only when metrics are enabled.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	cache := NewCacheProvider(conf, logger)
	if !conf.Metrics.Enabled || metrics == nil {
		return cache
	}
	return &sessionCacheMetrics{CacheProviderInterface: cache, metrics: metrics}
}
