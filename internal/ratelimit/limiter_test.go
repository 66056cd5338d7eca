package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestFixedWindowLimiter_BlocksAfterLimit(t *testing.T) {
	rdb, _ := newTestClient(t)
	l := NewFixedWindowLimiter(rdb, "login", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "attempt %d", i+1)
		assert.Equal(t, 3-(i+1), d.Remaining)
	}

	d, err := l.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Greater(t, d.RetryAfter, time.Duration(0))

	other, err := l.Allow(ctx, "ip:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestFixedWindowLimiter_NilClientAllows(t *testing.T) {
	l := NewFixedWindowLimiter(nil, "login", 1, time.Minute)
	for i := 0; i < 5; i++ {
		d, err := l.Allow(context.Background(), "ip:x")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
}

func TestFixedWindowLimiter_ZeroLimitAllows(t *testing.T) {
	rdb, _ := newTestClient(t)
	l := NewFixedWindowLimiter(rdb, "login", 0, time.Minute)

	d, err := l.Allow(context.Background(), "ip:x")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestFixedWindowLimiter_RedisDownReturnsError(t *testing.T) {
	rdb, mr := newTestClient(t)
	mr.Close()

	l := NewFixedWindowLimiter(rdb, "login", 1, time.Minute)
	_, err := l.Allow(context.Background(), "ip:x")
	require.Error(t, err)
}
