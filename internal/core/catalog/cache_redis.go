// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joycdecor/joycdecor/internal/platform/constants"
)

// RedisListCache caches gallery pages under a version namespace.
// Invalidation bumps the version, orphaning every page at once; the orphans
// expire on their own TTL.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisListCache creates a cache with the default gallery TTL.
func NewRedisListCache(client *redis.Client, logger *slog.Logger) *RedisListCache {
	return &RedisListCache{client: client, ttl: constants.CatalogListTTL, logger: logger}
}

// Get returns a cached page. Redis failures are logged and read as a miss.
func (cache *RedisListCache) Get(context context.Context, key string) ([]byte, bool) {
	payload, err := cache.client.Get(context, cache.versioned(context, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.WarnContext(context, "catalog_cache_read_failed", slog.Any("error", err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores a page for the cache TTL.
func (cache *RedisListCache) Set(context context.Context, key string, payload []byte) {
	if err := cache.client.Set(context, cache.versioned(context, key), payload, cache.ttl).Err(); err != nil {
		cache.logger.WarnContext(context, "catalog_cache_write_failed", slog.Any("error", err))
	}
}

// Invalidate moves the cache to a fresh version namespace.
func (cache *RedisListCache) Invalidate(context context.Context) {
	if err := cache.client.Incr(context, constants.RedisKeyCatalogVersion).Err(); err != nil {
		cache.logger.WarnContext(context, "catalog_cache_invalidate_failed", slog.Any("error", err))
	}
}

func (cache *RedisListCache) versioned(context context.Context, key string) string {
	version, err := cache.client.Get(context, constants.RedisKeyCatalogVersion).Result()
	if err != nil {
		version = "0"
	}
	return constants.RedisPrefixCatalogList + "v" + version + ":" + key
}
