// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// valkeyPrefix namespaces client state keys in Valkey.
	valkeyPrefix = "state:"

	// DefaultValkeyTTL is how long an untouched visitor's state survives.
	DefaultValkeyTTL = 30 * 24 * time.Hour
)

// Valkey stores values as plain strings in Valkey. Every write refreshes
// the key's TTL, so abandoned carts expire on their own.
type Valkey struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkey creates a store backed by client. A zero ttl uses
// DefaultValkeyTTL.
func NewValkey(client *redis.Client, ttl time.Duration) *Valkey {
	if ttl == 0 {
		ttl = DefaultValkeyTTL
	}
	return &Valkey{client: client, ttl: ttl}
}

func (v *Valkey) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := v.client.Get(ctx, valkeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errKey("get", key, err)
	}
	return val, true, nil
}

func (v *Valkey) Set(ctx context.Context, key, value string) error {
	if err := v.client.Set(ctx, valkeyPrefix+key, value, v.ttl).Err(); err != nil {
		return errKey("set", key, err)
	}
	return nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, valkeyPrefix+key).Err(); err != nil {
		return errKey("delete", key, err)
	}
	return nil
}
