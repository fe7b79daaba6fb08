package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/response"
)

// RateLimiter implements a simple token bucket per client key.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // Tokens per interval
	interval time.Duration // Refill interval
	now      func() time.Time
}

type visitor struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

// NewRateLimiter creates a RateLimiter (e.g., 30 requests per minute). Stale
// visitors are swept until ctx is cancelled.
func NewRateLimiter(ctx context.Context, rate int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}

	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				rl.cleanup()
			}
		}
	}()

	return rl
}

// Allow takes a token for key and reports whether one was available.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{tokens: rl.rate, lastRefill: now}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	// Refill whole intervals only, carrying the remainder forward.
	if periods := int(now.Sub(v.lastRefill) / rl.interval); periods > 0 {
		v.tokens = min(v.tokens+periods*rl.rate, rl.rate)
		v.lastRefill = v.lastRefill.Add(time.Duration(periods) * rl.interval)
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// Middleware returns a Gin middleware that rate-limits requests by the
// signed-in user, falling back to the client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if u := GetCurrentUser(c); u != nil {
			key = "user:" + u.ID
		}

		if !rl.Allow(key) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.visitors {
		if rl.now().Sub(v.lastSeen) > 3*rl.interval {
			delete(rl.visitors, key)
		}
	}
}
