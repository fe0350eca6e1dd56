// Package ratelimiter implements a per-identity token bucket used to cap
// request rates at the HTTP edge. The domain-level thread creation cap is
// separate and lives in the thread service.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

// Limiter tracks one token bucket per identity (user id, IP, ...).
// Idle buckets are dropped lazily after ttl.
type Limiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	ttl      time.Duration
}

func New(rate, capacity float64, ttl time.Duration) *Limiter {
	return &Limiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		ttl:      ttl,
	}
}

func OncePerSecond() *Limiter {
	return New(1, 1, time.Hour)
}

func Rps100() *Limiter {
	return New(100, 100, time.Hour)
}

// Allow consumes one token for identity if available.
func (l *Limiter) Allow(identity string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now, lastSeen: now}
		l.buckets[identity] = b
		l.sweep(now)
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastRefill = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// sweep drops buckets idle longer than ttl. Called under the lock and only
// when a new identity shows up, which bounds the map without timers.
func (l *Limiter) sweep(now time.Time) {
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.ttl {
			delete(l.buckets, id)
		}
	}
}
