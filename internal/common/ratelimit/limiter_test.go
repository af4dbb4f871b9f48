package ratelimit

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archibald/internal/common/database"
	"archibald/internal/common/errors"
)

func TestRedisSessionLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	l := NewRedisSessionLimiter(client, 3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "abc")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, err := l.Allow(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"abc"))

	mr.FastForward(time.Hour + time.Second)
	ok, err = l.Allow(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisSessionLimiter_StoreFailure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectIncr(keyPrefix + "abc").SetErr(stderrors.New("connection refused"))

	l := NewRedisSessionLimiter(database.NewRedisFromClient(db), 5, time.Hour)
	ok, err := l.Allow(context.Background(), "abc")

	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionStoreFailed, errors.AsStandardError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionLimiter_Disabled(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewRedisSessionLimiter(database.NewRedisFromClient(db), 0, time.Hour)

	ok, err := l.Allow(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	assert.Len(t, l.entries, 1)
}

func TestMemoryLimiter_SweepsPeriodically(t *testing.T) {
	l := NewMemoryLimiter(5, 10*time.Second)
	l.sweepEvery = time.Minute
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")

	// "a" has expired but the next sweep is not due yet.
	now = now.Add(20 * time.Second)
	_, _ = l.Allow(ctx, "b")
	assert.Len(t, l.entries, 2)

	now = now.Add(40 * time.Second)
	_, _ = l.Allow(ctx, "c")
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "c")
}

func TestMemoryLimiter_Disabled(t *testing.T) {
	l := NewMemoryLimiter(0, time.Minute)
	for i := 0; i < 10; i++ {
		ok, err := l.Allow(context.Background(), "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
