package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider wraps a Provider with a token-bucket limiter capping
// requests per minute. A maxRPM of zero disables limiting.
type RateLimitedProvider struct {
	inner  Provider
	maxRPM int

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewRateLimited wraps p so it never exceeds maxRPM requests per minute.
func NewRateLimited(p Provider, maxRPM int) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:  p,
		maxRPM: maxRPM,
		tokens: float64(maxRPM),
		last:   time.Now(),
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.inner.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if r.maxRPM > 0 {
		if err := r.wait(ctx); err != nil {
			return nil, err
		}
	}
	return r.inner.Complete(ctx, req)
}

// wait blocks until a token is available or the context is cancelled.
func (r *RateLimitedProvider) wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		elapsed := now.Sub(r.last).Minutes()
		r.tokens += elapsed * float64(r.maxRPM)
		if r.tokens > float64(r.maxRPM) {
			r.tokens = float64(r.maxRPM)
		}
		r.last = now

		if r.tokens >= 1 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}

		deficit := 1 - r.tokens
		r.mu.Unlock()

		sleep := time.Duration(deficit / float64(r.maxRPM) * float64(time.Minute))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
	}
}
