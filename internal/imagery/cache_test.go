package imagery

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingLookup struct {
	calls int
	url   string
	err   error
}

func (c *countingLookup) FindImage(context.Context, string) (string, error) {
	c.calls++
	return c.url, c.err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}

func TestCachedLookupHitsCache(t *testing.T) {
	next := &countingLookup{url: "https://img.example/rome.jpg"}
	l := NewCachedLookup(next, NewMemoryCache(time.Hour), time.Hour, zap.NewNop())
	ctx := context.Background()

	for _, q := range []string{"Rome", "  rome ", "ROME"} {
		got, err := l.FindImage(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, next.url, got)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedLookupDoesNotCacheFailures(t *testing.T) {
	next := &countingLookup{err: ErrNoImage}
	l := NewCachedLookup(next, NewMemoryCache(time.Hour), time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := l.FindImage(ctx, "Atlantis")
	assert.True(t, errors.Is(err, ErrNoImage))
	_, err = l.FindImage(ctx, "Atlantis")
	assert.True(t, errors.Is(err, ErrNoImage))
	assert.Equal(t, 2, next.calls)
}

func TestCachedLookupSurvivesBrokenCache(t *testing.T) {
	next := &countingLookup{url: "https://img.example/oslo.jpg"}
	l := NewCachedLookup(next, brokenCache{}, time.Hour, zap.NewNop())

	got, err := l.FindImage(context.Background(), "Oslo")
	require.NoError(t, err)
	assert.Equal(t, next.url, got)
}

func TestDisabledLookup(t *testing.T) {
	_, err := Disabled{}.FindImage(context.Background(), "Paris")
	assert.True(t, errors.Is(err, ErrNoImage))
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("WANDERLUST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WANDERLUST_TEST_REDIS_ADDR not set; skipping redis cache tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	c := NewRedisCache(rdb)
	key := "test-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { rdb.Del(ctx, redisKeyPrefix+key) })

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, "https://img.example/x.jpg", time.Minute))
	v, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/x.jpg", v)
}
