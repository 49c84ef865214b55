// Package ratelimit throttles unauthenticated write routes with fixed
// windows kept in Redis, or in process memory when Redis is not configured.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another request for key fits in the window. The
// returned duration is how long until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// MemoryLimiter keeps counters in a map. It is only accurate for a single
// process.
type MemoryLimiter struct {
	mu        sync.Mutex
	store     map[string]*bucket
	now       func() time.Time
	nextSweep time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
	window  time.Duration
}

// NewMemoryLimiter returns an empty limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: make(map[string]*bucket), now: time.Now}
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !now.Before(m.nextSweep) {
		m.sweep(now)
		m.nextSweep = now.Add(window)
	}

	b, ok := m.store[key]
	if !ok || !now.Before(b.resetAt) || b.window != window {
		b = &bucket{resetAt: now.Add(window), window: window}
		m.store[key] = b
	}

	retry := b.resetAt.Sub(now)
	if b.count >= limit {
		return false, retry, nil
	}
	b.count++
	return true, retry, nil
}

// sweep drops buckets whose window has ended. Callers hold mu.
func (m *MemoryLimiter) sweep(now time.Time) {
	for key, b := range m.store {
		if !now.Before(b.resetAt) {
			delete(m.store, key)
		}
	}
}

// RedisLimiter shares counters across instances. Each window is one key
// that expires when the window ends.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
}

// NewRedisLimiter builds a limiter over client.
func NewRedisLimiter(client redis.Cmdable) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: "dailypulse:ratelimit:"}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	k := r.prefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	retry := ttl.Val()
	if retry <= 0 {
		retry = window
	}
	return incr.Val() <= int64(limit), retry, nil
}
