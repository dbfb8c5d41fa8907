package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRateLimiter is the single-process limiter used when Redis is not
// configured. It keeps request timestamps per key and window.
type MemoryRateLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, config RateLimitConfig) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	allowed := true
	for _, w := range windowsFor(config) {
		if w.limit <= 0 {
			continue
		}
		k := windowKey(key, w.duration)
		hits := prune(l.hits[k], now.Add(-w.duration))
		if len(hits) >= w.limit {
			allowed = false
		}
		l.hits[k] = append(hits, now)
	}
	return allowed, nil
}

func (l *MemoryRateLimiter) GetRemaining(_ context.Context, key string, window time.Duration, limit int) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := windowKey(key, window)
	hits := prune(l.hits[k], l.now().Add(-window))
	l.hits[k] = hits

	remaining := int64(limit - len(hits))
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := key + ":"
	for k := range l.hits {
		if strings.HasPrefix(k, prefix) {
			delete(l.hits, k)
		}
	}
	return nil
}

func windowKey(key string, window time.Duration) string {
	return key + ":" + window.String()
}

// prune drops timestamps at or before cutoff; hits are in insertion order.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
