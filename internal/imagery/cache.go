// README: Image-URL caches (Redis shared, go-cache in-process) and the caching Lookup decorator.
package imagery

import (
	"context"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores resolved image URLs by normalized query.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const redisKeyPrefix = "wanderlust:image:"

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(ttl, time.Hour)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.c.Set(key, value, ttl)
	return nil
}

// CachedLookup remembers successful lookups. Cache errors degrade to a direct lookup.
type CachedLookup struct {
	next   Lookup
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedLookup(next Lookup, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, cache: cache, ttl: ttl, logger: logger.Named("image_cache")}
}

func (c *CachedLookup) FindImage(ctx context.Context, query string) (string, error) {
	key := cacheKey(query)
	if v, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("image cache read failed", zap.String("query", query), zap.Error(err))
	} else if ok {
		return v, nil
	}

	u, err := c.next.FindImage(ctx, query)
	if err != nil {
		return "", err
	}
	if err := c.cache.Set(ctx, key, u, c.ttl); err != nil {
		c.logger.Warn("image cache write failed", zap.String("query", query), zap.Error(err))
	}
	return u, nil
}

func cacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
