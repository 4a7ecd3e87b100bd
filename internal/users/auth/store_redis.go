// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/constants"
)

// RedisSessionCache implements SessionCache using Redis.
type RedisSessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new Redis-backed SessionCache.
func NewSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{client: client}
}

/*
Set stores a token-hash-to-account mapping with a TTL matching the session.

Parameters:
  - context: context.Context
  - tokenHash: string
  - accountID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (cache *RedisSessionCache) Set(context context.Context, tokenHash string, accountID string, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + tokenHash

	// Set the mapping with TTL
	if err := cache.client.Set(context, key, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the account ID for a given token hash.

Description: Returns apperr.NotFound if the mapping is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: AccountID
  - error: apperr.NotFound or connectivity errors
*/
func (cache *RedisSessionCache) Get(context context.Context, tokenHash string) (string, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + tokenHash

	// Get the mapping from Redis
	accountID, err := cache.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session is invalid or expired")
		}
		return "", fmt.Errorf("redis_session_cache_get_failed: %w", err)
	}

	// Return the accountID
	return accountID, nil
}

/*
Delete removes the token hash from the index.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisSessionCache) Delete(context context.Context, tokenHash string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + tokenHash

	// Delete the mapping from Redis
	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_cache_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
