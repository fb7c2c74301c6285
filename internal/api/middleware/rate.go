package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osa911/glassesrelay/internal/api/dto/common"
	"github.com/osa911/glassesrelay/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the rate limiter
type RateLimitConfig struct {
	// Requests per second per client
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
	// IdleTTL evicts limiters of clients not seen for this long
	IdleTTL time.Duration
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	config  RateLimitConfig
}

// NewRateLimiter creates a per-client limiter store
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.IdleTTL <= 0 {
		config.IdleTTL = 15 * time.Minute
	}
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		config:  config,
	}
}

// Get returns the limiter for key, creating it on first use
func (l *RateLimiter) Get(key string) *rate.Limiter {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)
	l.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// Len reports how many clients are tracked
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Cleanup drops limiters idle for longer than IdleTTL
func (l *RateLimiter) Cleanup() {
	cutoff := time.Now().Add(-l.config.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// StartJanitor runs Cleanup periodically until ctx is done
func (l *RateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

// Middleware rejects clients that exceed their bucket with 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := l.Get(utils.GetRealIP(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.Burst))

		if !lim.Allow() {
			// Reserve and cancel to learn the wait without spending a token
			r := lim.Reserve()
			wait := r.Delay()
			r.Cancel()

			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			utils.HandleAPIError(c, nil, http.StatusTooManyRequests, common.ErrCodeTooManyRequests, common.MsgRateLimited)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(lim.Tokens())))
		c.Next()
	}
}
