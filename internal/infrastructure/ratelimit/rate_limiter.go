package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionAdminRequest  = "admin_request"
	ActionFileComplaint = "file_complaint"

	idleTimeout = 2 * time.Hour
)

// Policy is a token bucket: Rate tokens per second, at most Burst stored.
type Policy struct {
	Rate  rate.Limit
	Burst int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per subject and action.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	policies map[string]Policy
	fallback Policy
}

func NewRateLimiter(fallback Policy) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		policies: make(map[string]Policy),
		fallback: normalize(fallback),
	}
}

func normalize(p Policy) Policy {
	if p.Burst < 1 {
		p.Burst = 1
	}
	return p
}

// SetPolicy overrides the fallback policy for one action. Existing buckets
// keep their old policy until they are cleaned up.
func (rl *RateLimiter) SetPolicy(action string, p Policy) {
	rl.mu.Lock()
	rl.policies[action] = normalize(p)
	rl.mu.Unlock()
}

// Allow consumes a token for subject and action if one is available.
func (rl *RateLimiter) Allow(subject, action string) bool {
	return rl.bucketFor(subject, action, time.Now()).Allow()
}

func (rl *RateLimiter) bucketFor(subject, action string, now time.Time) *rate.Limiter {
	key := subject + ":" + action

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		p, ok := rl.policies[action]
		if !ok {
			p = rl.fallback
		}
		b = &bucket{limiter: rate.NewLimiter(p.Rate, p.Burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Cleanup drops buckets idle for longer than two hours.
func (rl *RateLimiter) Cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idleTimeout {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.Cleanup(now)
			}
		}
	}()
}
