// Package ratelimit provides per-key token-bucket rate limiting for
// inbound request protection. Keys are typically client IPs.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepInterval controls how often idle entries are evicted. An entry is
// idle once it has not been touched for two sweep intervals.
const sweepInterval = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter hands each key its own token bucket and evicts buckets
// that have gone idle, so the map stays bounded even with churning clients.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed rate limiter allowing rps requests per second per key
// with the given burst size.
func New(rps float64, burst int) *KeyedRateLimiter {
	k := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}
	go k.sweep()
	return k
}

// Allow reports whether a request for key should proceed. Never blocks.
func (k *KeyedRateLimiter) Allow(key string) bool {
	now := time.Now()

	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = now
	k.mu.Unlock()

	return e.limiter.Allow()
}

// Len returns the number of tracked keys.
func (k *KeyedRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// Stop terminates the eviction goroutine.
func (k *KeyedRateLimiter) Stop() {
	k.stopOnce.Do(func() { close(k.done) })
}

func (k *KeyedRateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-k.done:
			return
		case now := <-ticker.C:
			k.mu.Lock()
			for key, e := range k.entries {
				if now.Sub(e.lastSeen) > 2*sweepInterval {
					delete(k.entries, key)
				}
			}
			k.mu.Unlock()
		}
	}
}
