package middleware

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests rejected")
	}
	if rl.Allow("a") {
		t.Fatal("third request allowed")
	}
	if !rl.Allow("b") {
		t.Error("keys share a bucket")
	}

	now = now.Add(59 * time.Second)
	if rl.Allow("a") {
		t.Error("refilled before a full interval")
	}

	now = now.Add(time.Second)
	if !rl.Allow("a") || !rl.Allow("a") {
		t.Error("bucket not refilled after one interval")
	}
	if rl.Allow("a") {
		t.Error("refill exceeded the rate")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("stale")
	now = now.Add(10 * time.Minute)
	rl.Allow("fresh")
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.visitors["stale"]; ok {
		t.Error("stale visitor kept")
	}
	if _, ok := rl.visitors["fresh"]; !ok {
		t.Error("fresh visitor removed")
	}
}
