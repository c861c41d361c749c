// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON decodes the value under key into out. It reports false when the
// key is absent. A value that is not valid JSON is returned as an error so
// callers can choose to start from an empty state.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return true, fmt.Errorf("persist decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("persist encode %q: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
