package ratelimiter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ClientLimiters holds one token bucket limiter per client key (normally the
// remote IP). Buckets are created lazily and dropped by Run once idle.
type ClientLimiters struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates ClientLimiters allowing ratePerSec steady-state requests per
// client with the given burst. A burst below 1 is raised to 1.
func New(ratePerSec float64, burst int) *ClientLimiters {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiters{
		limit:   rate.Limit(ratePerSec),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Allow reports whether the client identified by key may proceed now.
// It never blocks.
func (cl *ClientLimiters) Allow(key string) bool {
	cl.mu.Lock()
	c, ok := cl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.clients[key] = c
	}
	now := cl.now()
	c.lastSeen = now
	cl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (cl *ClientLimiters) Len() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.clients)
}

// Sweep drops clients not seen within idle and returns how many were removed.
func (cl *ClientLimiters) Sweep(idle time.Duration) int {
	cutoff := cl.now().Add(-idle)

	cl.mu.Lock()
	defer cl.mu.Unlock()

	removed := 0
	for key, c := range cl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(cl.clients, key)
			removed++
		}
	}
	return removed
}

// Run ticks every interval and sweeps idle clients.
// Stops cleanly when ctx is cancelled.
func (cl *ClientLimiters) Run(ctx context.Context, interval, idle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("rate limiter sweeper started",
		zap.Duration("interval", interval), zap.Duration("idle", idle))

	for {
		select {
		case <-ctx.Done():
			logger.Info("rate limiter sweeper stopping")
			return
		case <-ticker.C:
			if n := cl.Sweep(idle); n > 0 {
				logger.Debug("evicted idle rate limit buckets", zap.Int("count", n))
			}
		}
	}
}
