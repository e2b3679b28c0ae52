// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile data storage.

It holds data that is allowed to disappear: password reset tokens (1h TTL)
and cached gallery pages invalidated on every catalog write.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout   = 2 * time.Second
	connectTries  = 3
	connectBackoff = 500 * time.Millisecond
)

// NewClient connects to redisURL and waits for the server to answer.
// The first ping is retried so the API can start alongside a cold cache.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	tune(options)

	client := redis.NewClient(options)

	err = retry.Do(
		func() error { return Ping(context, client) },
		retry.Context(context),
		retry.Attempts(connectTries),
		retry.Delay(connectBackoff),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("redis_connect_retry", slog.Uint64("attempt", uint64(attempt+1)), slog.Any("error", err))
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected", slog.String("addr", options.Addr), slog.Int("db", options.DB))
	return client, nil
}

// tune sizes the pool for a small cache-and-token workload.
func tune(options *redis.Options) {
	options.PoolSize = 10
	options.MinIdleConns = 2
	options.MaxIdleConns = 5
	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = 2 * time.Second
	options.WriteTimeout = 2 * time.Second
}

// Ping reports whether the server answers within two seconds.
// It doubles as the readiness probe.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingContext).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
