package services

import (
	"aurora/internal/structures"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// boundarySlack absorbs float rounding in rate.Every so a request arriving
// exactly one cooldown after the last admit is let through.
const boundarySlack = time.Microsecond

type RateLimiterInterface interface {
	Admit(key string) bool
	Sweep() int
	Size() int
}

// RateLimiter is a per-client cooldown gate: one token bucket of burst 1
// refilling once per cooldown for every key. Denials take no token, so they
// do not extend the window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*cooldownEntry
	every   rate.Limit
	maxKeys int
	now     func() time.Time
}

type cooldownEntry struct {
	limiter  *rate.Limiter
	admitted time.Time
}

func NewRateLimiter(conf *structures.Config) RateLimiterInterface {
	return newRateLimiter(conf.RateLimit.Cooldown, conf.RateLimit.MaxKeys, time.Now)
}

func newRateLimiter(cooldown time.Duration, maxKeys int, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*cooldownEntry),
		every:   rate.Every(cooldown),
		maxKeys: maxKeys,
		now:     now,
	}
}

func (rl *RateLimiter) Admit(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, seen := rl.clients[key]
	if !seen {
		if rl.maxKeys > 0 && len(rl.clients) >= rl.maxKeys {
			rl.sweepLocked(now)
			if len(rl.clients) >= rl.maxKeys {
				rl.evictOldestLocked()
			}
		}
		entry = &cooldownEntry{limiter: rate.NewLimiter(rl.every, 1)}
		rl.clients[key] = entry
	}
	if !entry.limiter.AllowN(now.Add(boundarySlack), 1) {
		return false
	}
	entry.admitted = now
	return true
}

// Sweep drops keys whose bucket has refilled, which is the same as never
// having been seen, and returns how many went.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.sweepLocked(rl.now())
}

func (rl *RateLimiter) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range rl.clients {
		if entry.limiter.TokensAt(now.Add(boundarySlack)) >= 1 {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range rl.clients {
		if oldestKey == "" || entry.admitted.Before(oldest) {
			oldestKey, oldest = key, entry.admitted
		}
	}
	delete(rl.clients, oldestKey)
}

func (rl *RateLimiter) Size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// ClientKey is the first X-Forwarded-For entry, else the peer host.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
