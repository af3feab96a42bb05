// SPDX-License-Identifier: MIT
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// bucket is a fixed-window token bucket for one client
type bucket struct {
	tokens   int
	refillAt time.Time
	seen     time.Time
}

// RateLimiter manages token buckets per client IP
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	interval time.Duration
	now      func() time.Time
}

// NewRateLimiter allows capacity requests per client every interval
func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: capacity,
		interval: interval,
		now:      time.Now,
	}
}

// Capacity is the number of requests allowed per interval
func (rl *RateLimiter) Capacity() int {
	return rl.capacity
}

// Allow consumes a token for key. It reports whether the request may
// proceed, the tokens left, and when the bucket refills.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok || !now.Before(b.refillAt) {
		b = &bucket{tokens: rl.capacity, refillAt: now.Add(rl.interval)}
		rl.buckets[key] = b
	}
	b.seen = now

	if b.tokens > 0 {
		b.tokens--
		return true, b.tokens, b.refillAt
	}
	return false, 0, b.refillAt
}

// Sweep drops buckets idle for longer than idle
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	dropped := 0
	for key, b := range rl.buckets {
		if now.Sub(b.seen) > idle {
			delete(rl.buckets, key)
			dropped++
		}
	}
	return dropped
}

// RunSweeper sweeps idle buckets every interval until ctx is done
func (rl *RateLimiter) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep(2 * every)
		}
	}
}

// RateLimit rejects requests beyond the limiter's budget with 429. onReject,
// if set, runs for every rejected request.
func RateLimit(limiter *RateLimiter, onReject func(*gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, refillAt := limiter.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Capacity()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(refillAt.Sub(limiter.now()).Seconds() + 0.5)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			if onReject != nil {
				onReject(c)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
