// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides the read-through record cache used by entity services.

Entries are JSON encoded and stored in Redis under a per-entity prefix with a
fixed TTL. The cache is strictly best-effort: a Redis failure is logged and
treated as a miss, never surfaced to the client.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the cache contract consumed by services.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool)
	Set(ctx context.Context, id string, value T)
	Delete(ctx context.Context, id string)
}

// Redis is a [Store] backed by go-redis.
type Redis[T any] struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis creates a cache for one entity type.
func NewRedis[T any](client redis.Cmdable, prefix string, ttl time.Duration, logger *slog.Logger) *Redis[T] {
	return &Redis[T]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// Get returns the cached value for id, or false on a miss or any failure.
func (c *Redis[T]) Get(ctx context.Context, id string) (T, bool) {
	var value T

	payload, err := c.client.Get(ctx, c.prefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache_get_failed", slog.String("key", c.prefix+id), slog.Any("error", err))
		}
		return value, false
	}

	if err := json.Unmarshal(payload, &value); err != nil {
		c.logger.WarnContext(ctx, "cache_decode_failed", slog.String("key", c.prefix+id), slog.Any("error", err))
		return value, false
	}
	return value, true
}

// Set stores value under id with the configured TTL.
func (c *Redis[T]) Set(ctx context.Context, id string, value T) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "cache_encode_failed", slog.String("key", c.prefix+id), slog.Any("error", err))
		return
	}

	if err := c.client.Set(ctx, c.prefix+id, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache_set_failed", slog.String("key", c.prefix+id), slog.Any("error", err))
	}
}

// Delete evicts id.
func (c *Redis[T]) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.prefix+id).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache_delete_failed", slog.String("key", c.prefix+id), slog.Any("error", err))
	}
}

// Nop is a [Store] that never holds anything.
type Nop[T any] struct{}

func (Nop[T]) Get(context.Context, string) (T, bool) {
	var zero T
	return zero, false
}

func (Nop[T]) Set(context.Context, string, T) {}

func (Nop[T]) Delete(context.Context, string) {}
