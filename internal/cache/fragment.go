// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// fragmentKeyPrefix is the Valkey key prefix for cached fragments.
	fragmentKeyPrefix = "fragment:"

	// DefaultFragmentTTL is how long a rendered fragment stays cached.
	DefaultFragmentTTL = 24 * time.Hour
)

// FragmentCache stores rendered HTML fragments in Valkey. Keys are content
// hashes, so an entry never goes stale; the TTL only bounds memory.
type FragmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFragmentCache creates a fragment cache backed by the given Valkey client.
func NewFragmentCache(client *redis.Client, ttl time.Duration) *FragmentCache {
	if ttl == 0 {
		ttl = DefaultFragmentTTL
	}
	return &FragmentCache{client: client, ttl: ttl}
}

// Get retrieves a cached fragment. Errors count as a miss.
func (fc *FragmentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := fc.client.Get(ctx, fragmentKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("fragment cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("fragment cache hit", "key", key)
	return val, true
}

// Set stores a fragment with the configured TTL.
func (fc *FragmentCache) Set(ctx context.Context, key string, html []byte) {
	if err := fc.client.Set(ctx, fragmentKeyPrefix+key, html, fc.ttl).Err(); err != nil {
		slog.Warn("fragment cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes all cached fragments by scanning for the prefix.
// Called at startup since the renderer options may have changed.
func (fc *FragmentCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := fc.client.Scan(ctx, cursor, fragmentKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("fragment cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("fragment cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("fragment cache cleared", "deleted", deleted)
	}
}
