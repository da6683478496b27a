package googleai

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Gemini API surface for rate limiting purposes.
type ServiceType string

const (
	// ServiceEmbedding is the text embedding API.
	ServiceEmbedding ServiceType = "embedding"
	// ServiceGeneration is the content generation API.
	ServiceGeneration ServiceType = "generation"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Gemini surface.
// These sit well below Google's published quotas so that ingesting a large
// manual library on the free tier does not trip the per-minute limits.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceEmbedding:  {RequestsPerSecond: 2.0, BurstSize: 5},
	ServiceGeneration: {RequestsPerSecond: 1.0, BurstSize: 2},
}

// defaultBackoff applies when a rate limit response carries no
// Retry-After hint.
const defaultBackoff = 60 * time.Second

// RateLimiter provides rate limiting for Gemini API requests.
// It uses a token bucket algorithm with a backoff window for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	service ServiceType
}

// NewRateLimiter creates a new rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		// Default fallback
		cfg = RateLimitConfig{RequestsPerSecond: 1.0, BurstSize: 1}
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
		service: service,
	}
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1.0
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff window set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// First, check for backoff from previous rate limit errors
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	// Then wait for the token bucket
	return r.limiter.Wait(ctx)
}

// RecordRateLimitError records a rate limit response and opens a backoff
// window. Pass the server's Retry-After value in seconds, or 0 to use the
// default backoff.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	backoff := defaultBackoff
	if retryAfterSeconds > 0 {
		backoff = time.Duration(retryAfterSeconds) * time.Second
	}

	r.retryAt = time.Now().Add(backoff)
}

// Do runs fn under the rate limit. When fn fails with a rate limit error,
// Do backs off for the server-suggested window and retries once.
func (r *RateLimiter) Do(ctx context.Context, fn func() error) error {
	if err := r.Wait(ctx); err != nil {
		return err
	}

	err := fn()
	if err == nil || !IsRateLimited(err) {
		return err
	}

	r.RecordRateLimitError(RetryAfterSeconds(err))
	if werr := r.Wait(ctx); werr != nil {
		return werr
	}

	return fn()
}
