// Package ratelimit implements a fixed-window limiter for the auth
// endpoints, backed by redis when available and by process memory
// otherwise.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter reports whether the caller identified by key may proceed, and if
// not, how long until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

type memoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket
}

type bucket struct {
	count     int
	windowEnd time.Time
}

// NewMemory returns an in-process fixed-window limiter.
func NewMemory(limit int, window time.Duration) Limiter {
	return &memoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.windowEnd) {
		l.buckets[key] = &bucket{count: 1, windowEnd: now.Add(l.window)}
		return true, 0, nil
	}

	if b.count >= l.limit {
		retry := time.Until(b.windowEnd)
		if retry < 0 {
			retry = 0
		}
		return false, retry, nil
	}

	b.count++
	return true, 0, nil
}
