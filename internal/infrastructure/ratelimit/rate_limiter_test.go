package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(2, 1, time.Hour)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)

	allowed, retryAfter := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestTokenBucketCapsAtMax(t *testing.T) {
	bucket := NewTokenBucket(2, 5, 10*time.Millisecond)

	bucket.Allow()
	time.Sleep(30 * time.Millisecond)
	bucket.Allow()

	assert.Equal(t, 1, bucket.GetTokens())
}

func TestRateLimiterPerActionLimits(t *testing.T) {
	limiter := NewRateLimiter()

	// submit_quote allows 3 before blocking.
	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "submit_quote")
		assert.True(t, allowed, "attempt %d", i+1)
	}
	allowed, _ := limiter.Allow("1.2.3.4", "submit_quote")
	assert.False(t, allowed)

	// Other callers and actions use their own buckets.
	allowed, _ = limiter.Allow("5.6.7.8", "submit_quote")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "contact")
	assert.True(t, allowed)
}

func TestCleanupRemovesStaleBuckets(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.Allow("user-1", "post_message")

	limiter.buckets["user-1:post_message"].lastRefill = time.Now().Add(-2 * time.Hour)
	limiter.Cleanup()

	assert.Empty(t, limiter.buckets)
}
