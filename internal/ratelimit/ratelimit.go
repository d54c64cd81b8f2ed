package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter is an implementation of Limiter stored in memory
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit // Tokens added per second for each key
	b    int        // Bucket size
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(5, 10) -> 5 requests per second per key, burst of 10
func NewInMemoryLimiter(perSecond float64, burst int) *InMemoryLimiter {
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    rate.Limit(perSecond),
		b:    burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

func (l *InMemoryLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}
	return limiter
}

// Wait blocks until a request for key may proceed. It fails immediately
// when the wait would outlast the context deadline.
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	return l.limiter(key).Wait(ctx)
}
