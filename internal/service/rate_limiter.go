package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

// PostRateLimiter limita cuántos posts puede publicar un usuario por ventana.
type PostRateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

type memoryPostRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
}

// NewPostRateLimiter crea un rate limiter en memoria, válido para una sola instancia.
func NewPostRateLimiter(window time.Duration, max int) PostRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Hour
	}
	return &memoryPostRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (l *memoryPostRateLimiter) Allow(_ context.Context, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}
