package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, valkeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestValkey(t *testing.T) {
	exerciseStore(t, NewValkey(testValkeyClient(t), time.Minute))
}

func TestValkeyTTL(t *testing.T) {
	client := testValkeyClient(t)
	s := NewValkey(client, time.Minute)
	ctx := context.Background()

	if err := s.Set(ctx, "ttl", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	ttl, err := client.TTL(ctx, valkeyPrefix+"ttl").Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want within (0, 1m]", ttl)
	}
}

func TestNewValkeyDefaultTTL(t *testing.T) {
	if got := NewValkey(nil, 0).ttl; got != DefaultValkeyTTL {
		t.Errorf("ttl = %v, want %v", got, DefaultValkeyTTL)
	}
}
