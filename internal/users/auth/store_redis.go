// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
)

// RedisResetTokenRepository implements [ResetTokenRepository] with expiring keys.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis-backed [ResetTokenRepository].
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores the digest with its owner; Redis expires it after ttl.
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, constants.RedisPrefixResetToken+tokenHash, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

/*
Get resolves a digest to its user id.

Returns apperr.NotFound if the token is unknown or has expired.
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.Get(context, constants.RedisPrefixResetToken+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}
	return userID, nil
}

// Delete consumes the token.
func (repository *RedisResetTokenRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, constants.RedisPrefixResetToken+tokenHash).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
