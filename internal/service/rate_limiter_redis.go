package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPostAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisPostRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisPostRateLimiter comparte el contador entre instancias del API.
func NewRedisPostRateLimiter(client *redis.Client, window time.Duration, max int) PostRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Hour
	}
	if max <= 0 {
		max = 1
	}
	return &redisPostRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "post:rl:",
	}
}

// Allow deja pasar si Redis falla; publicar no debe depender del limitador.
func (l *redisPostRateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.TrimSpace(key)
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 3600
	}
	count, err := l.client.Eval(ctx, redisPostAllowScript, []string{l.prefix + normalizedKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
