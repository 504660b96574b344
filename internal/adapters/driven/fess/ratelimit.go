package fess

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBackoff is used when a 429 response carries no Retry-After.
const DefaultBackoff = 30 * time.Second

// RateLimiter throttles requests to Fess.
// It uses a token bucket with a backoff window after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter. A non-positive rate disables throttling.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff period after a 429 response.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = DefaultBackoff
	}
	r.retryAt = time.Now().Add(retryAfter)
}
