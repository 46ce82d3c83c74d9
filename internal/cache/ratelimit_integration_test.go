//go:build integration

package cache

import (
	"context"
	"testing"

	"github.com/recipebox/recipebox/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func TestIntegrationCheckLoginRateLimit_AllowsWithinBurst(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	for i := 0; i < 5; i++ {
		result, err := c.CheckLoginRateLimit(ctx, "10.0.0.1", 1, 5)
		if err != nil {
			t.Fatalf("CheckLoginRateLimit failed: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
}

func TestIntegrationCheckLoginRateLimit_BlocksOverBurst(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	var blocked bool
	for i := 0; i < 10; i++ {
		result, err := c.CheckLoginRateLimit(ctx, "10.0.0.2", 1, 3)
		if err != nil {
			t.Fatalf("CheckLoginRateLimit failed: %v", err)
		}
		if !result.Allowed {
			blocked = true
			if result.RetryAfter <= 0 {
				t.Error("blocked result should carry a retry-after hint")
			}
			break
		}
	}

	if !blocked {
		t.Error("expected rate limit to trigger past the burst")
	}
}

func TestIntegrationCheckLoginRateLimit_PerIP(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	// Exhaust one IP's bucket
	for i := 0; i < 5; i++ {
		_, _ = c.CheckLoginRateLimit(ctx, "10.0.0.3", 1, 3)
	}

	// A different IP still gets through
	result, err := c.CheckLoginRateLimit(ctx, "10.0.0.4", 1, 3)
	if err != nil {
		t.Fatalf("CheckLoginRateLimit failed: %v", err)
	}
	if !result.Allowed {
		t.Error("limits should be tracked per IP")
	}
}
