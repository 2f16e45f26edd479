// Copyright (c) 2026 Shipdoc. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shipdoc/internal/platform/constants"
)

// TypeCache holds the distinct reference type list between writes.
type TypeCache interface {
	// Get returns the cached list and whether it was present.
	Get(context context.Context) ([]string, bool, error)
	Set(context context.Context, types []string) error
	Invalidate(context context.Context) error
}

// RedisTypeCache stores the type list as a JSON array under a single key.
type RedisTypeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTypeCache returns a Redis backed [TypeCache].
func NewRedisTypeCache(client *redis.Client, ttl time.Duration) *RedisTypeCache {
	return &RedisTypeCache{client: client, ttl: ttl}
}

// Get implements [TypeCache].
func (cache *RedisTypeCache) Get(context context.Context) ([]string, bool, error) {
	raw, err := cache.client.Get(context, constants.RedisKeyReferenceTypes).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reference: read type cache: %w", err)
	}

	var types []string
	if err := json.Unmarshal(raw, &types); err != nil {
		return nil, false, fmt.Errorf("reference: decode type cache: %w", err)
	}
	return types, true, nil
}

// Set implements [TypeCache].
func (cache *RedisTypeCache) Set(context context.Context, types []string) error {
	raw, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("reference: encode type cache: %w", err)
	}
	return cache.client.Set(context, constants.RedisKeyReferenceTypes, raw, cache.ttl).Err()
}

// Invalidate implements [TypeCache].
func (cache *RedisTypeCache) Invalidate(context context.Context) error {
	return cache.client.Del(context, constants.RedisKeyReferenceTypes).Err()
}

// noCache is used when no cache is configured.
type noCache struct{}

func (noCache) Get(context.Context) ([]string, bool, error) { return nil, false, nil }
func (noCache) Set(context.Context, []string) error          { return nil }
func (noCache) Invalidate(context.Context) error             { return nil }
