package providers

import (
	"aurora/internal/structures"
	"github.com/coocood/freecache"
)

const defaultSessionCacheMB = 1

// CacheProviderInterface is the byte store behind the session service.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
	Len() int
}

// CacheProvider holds session records in freecache. Every entry shares the
// session TTL; when a segment fills up freecache overwrites its oldest
// entries, which logs those sessions out early.
type CacheProvider struct {
	store      *freecache.Cache
	ttlSeconds int
	logger     Logger
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	sizeMB := conf.Session.CacheSize
	if sizeMB <= 0 {
		sizeMB = defaultSessionCacheMB
	}
	ttl := max(int(conf.Auth.SessionTTL.Seconds()), 1)
	logger.Infof(TypeApp, "Session cache initialized: %dMB, TTL=%ds", sizeMB, ttl)

	return &CacheProvider{
		store:      freecache.NewCache(sizeMB * 1024 * 1024),
		ttlSeconds: ttl,
		logger:     logger,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	value, err := c.store.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set drops entries freecache refuses (oversized values) with a warning; the
// caller then sees a miss on the next Get.
func (c *CacheProvider) Set(key string, value []byte) {
	if err := c.store.Set([]byte(key), value, c.ttlSeconds); err != nil {
		c.logger.Warnf(TypeApp, "Session cache rejected %d byte entry: %s", len(value), err)
	}
}

func (c *CacheProvider) Del(key string) {
	c.store.Del([]byte(key))
}

// Len counts stored entries, including expired ones freecache has not
// reclaimed yet.
func (c *CacheProvider) Len() int {
	return int(c.store.EntryCount())
}
