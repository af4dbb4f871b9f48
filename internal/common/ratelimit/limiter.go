// Package ratelimit caps the number of chat requests a session may make
// within a fixed window.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"archibald/internal/common/database"
	"archibald/internal/common/errors"
)

// Limiter decides whether a session may make one more request. A limit of
// zero disables limiting.
type Limiter interface {
	Allow(ctx context.Context, sessionID string) (bool, error)
}

const keyPrefix = "archibald:session:"

// RedisSessionLimiter shares counters across instances. The window starts at
// the first request of a session.
type RedisSessionLimiter struct {
	redis  *database.RedisClient
	limit  int
	window time.Duration
}

func NewRedisSessionLimiter(client *database.RedisClient, limit int, window time.Duration) *RedisSessionLimiter {
	return &RedisSessionLimiter{redis: client, limit: limit, window: window}
}

func (l *RedisSessionLimiter) Allow(ctx context.Context, sessionID string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	n, err := l.redis.IncrWindow(ctx, keyPrefix+sessionID, l.window)
	if err != nil {
		return false, errors.NewSessionStoreFailedError(err)
	}
	return n <= int64(l.limit), nil
}

type memoryEntry struct {
	count   int
	expires time.Time
}

// MemoryLimiter is the single-process fallback used when Redis is not
// configured. Expired sessions are swept at most once per sweepEvery.
type MemoryLimiter struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	limit      int
	window     time.Duration
	sweepEvery time.Duration
	nextSweep  time.Time
	now        func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	sweepEvery := time.Minute
	if window > 0 && window < sweepEvery {
		sweepEvery = window
	}
	return &MemoryLimiter{
		entries:    make(map[string]*memoryEntry),
		limit:      limit,
		window:     window,
		sweepEvery: sweepEvery,
		now:        time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, sessionID string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if !now.Before(l.nextSweep) {
		l.evictExpired(now)
		l.nextSweep = now.Add(l.sweepEvery)
	}

	e, ok := l.entries[sessionID]
	if !ok || !now.Before(e.expires) {
		e = &memoryEntry{expires: now.Add(l.window)}
		l.entries[sessionID] = e
	}
	e.count++
	return e.count <= l.limit, nil
}

// evictExpired must be called with mu held.
func (l *MemoryLimiter) evictExpired(now time.Time) {
	for id, e := range l.entries {
		if !now.Before(e.expires) {
			delete(l.entries, id)
		}
	}
}
