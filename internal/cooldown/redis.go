package cooldown

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const releaseTimeout = 2 * time.Second

// RedisGuard keeps the marker server-side, keyed by client, with the window as TTL
type RedisGuard struct {
	rdb    redis.Cmdable
	prefix string
	window time.Duration
	keyFn  KeyFunc
}

type RedisOption func(*RedisGuard)

func WithPrefix(prefix string) RedisOption {
	return func(g *RedisGuard) { g.prefix = strings.Trim(prefix, ":") }
}

func WithWindow(d time.Duration) RedisOption {
	return func(g *RedisGuard) {
		if d > 0 {
			g.window = d
		}
	}
}

func NewRedisGuard(rdb redis.Cmdable, keyFn KeyFunc, opts ...RedisOption) *RedisGuard {
	g := &RedisGuard{
		rdb:    rdb,
		prefix: "glassesrelay:cooldown",
		window: DefaultWindow,
		keyFn:  keyFn,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *RedisGuard) Mode() string { return "redis" }

func (g *RedisGuard) key(r *http.Request) string {
	return g.prefix + ":" + g.keyFn(r)
}

// Check reserves the client's key with SET NX EX, so concurrent requests from
// one client cannot all pass before the first one commits.
func (g *RedisGuard) Check(r *http.Request) (Decision, error) {
	key := g.key(r)

	reserved, err := g.rdb.SetNX(r.Context(), key, 1, g.window).Result()
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("cooldown reserve: %w", err)
	}
	if reserved {
		return Decision{Allowed: true}, nil
	}

	ttl, err := g.rdb.TTL(r.Context(), key).Result()
	if err != nil {
		return Decision{Allowed: false}, fmt.Errorf("cooldown lookup: %w", err)
	}
	if ttl > 0 {
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}
	// -1 is a key without expiry, -2 one that expired since SETNX
	return Decision{Allowed: false}, nil
}

// Commit restarts the window from the moment the order was delivered
func (g *RedisGuard) Commit(_ http.ResponseWriter, r *http.Request) error {
	if err := g.rdb.Set(r.Context(), g.key(r), 1, g.window).Err(); err != nil {
		return fmt.Errorf("cooldown store: %w", err)
	}
	return nil
}

// Release deletes the reservation, even when the request context is already cancelled
func (g *RedisGuard) Release(r *http.Request) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), releaseTimeout)
	defer cancel()

	if err := g.rdb.Del(ctx, g.key(r)).Err(); err != nil {
		return fmt.Errorf("cooldown release: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable
func (g *RedisGuard) Ping(ctx context.Context) error {
	return g.rdb.Ping(ctx).Err()
}
