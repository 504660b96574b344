package fess

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// waitBriefly reports whether Wait returns within a short deadline.
func waitBriefly(r *RateLimiter) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	return r.Wait(ctx) == nil
}

func TestRateLimiter_Unlimited(t *testing.T) {
	r := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, waitBriefly(r))
	}
}

func TestRateLimiter_Burst(t *testing.T) {
	r := NewRateLimiter(0.001, 2)
	assert.True(t, waitBriefly(r))
	assert.True(t, waitBriefly(r))
	assert.False(t, waitBriefly(r))
}

func TestRateLimiter_BackoffBlocksWait(t *testing.T) {
	r := NewRateLimiter(100, 10)
	r.RecordRateLimitError(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_WaitWithoutBackoff(t *testing.T) {
	r := NewRateLimiter(100, 10)
	assert.NoError(t, r.Wait(context.Background()))
}
