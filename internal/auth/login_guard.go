package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockoutKeyPrefix = "inventory:login:failures:"

// LoginGuard tracks failed logins per username and locks out brute-force
// attempts. Implementations fail open: a broken counter store means "not
// locked", so the methods report no errors.
type LoginGuard interface {
	Locked(ctx context.Context, username string) bool
	// RecordFailure counts a failed attempt and reports whether the account is now locked.
	RecordFailure(ctx context.Context, username string) bool
	Reset(ctx context.Context, username string)
}

// CounterStore is the subset of the redis client the guard needs.
type CounterStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLoginGuard keeps one counter per username. The counter expires after
// window, which is also the lockout period once maxFailures is reached.
// Redis errors fail open: login falls back to password checking only.
type RedisLoginGuard struct {
	store       CounterStore
	maxFailures int64
	window      time.Duration
	logger      *zap.Logger
}

// NewRedisLoginGuard returns a guard, or a no-op guard when store is nil or
// maxFailures is not positive.
func NewRedisLoginGuard(store CounterStore, maxFailures int, window time.Duration, logger *zap.Logger) LoginGuard {
	if store == nil || maxFailures <= 0 || window <= 0 {
		return NoopLoginGuard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLoginGuard{store: store, maxFailures: int64(maxFailures), window: window, logger: logger}
}

func lockoutKey(username string) string {
	return lockoutKeyPrefix + strings.ToLower(strings.TrimSpace(username))
}

func (g *RedisLoginGuard) Locked(ctx context.Context, username string) bool {
	n, err := g.store.Get(ctx, lockoutKey(username)).Int64()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		g.logger.Warn("login guard unavailable", zap.Error(err))
		return false
	}
	return n >= g.maxFailures
}

func (g *RedisLoginGuard) RecordFailure(ctx context.Context, username string) bool {
	key := lockoutKey(username)
	n, err := g.store.Incr(ctx, key).Result()
	if err != nil {
		g.logger.Warn("login guard unavailable", zap.Error(err))
		return false
	}
	// Only the first failure opens the window; later ones don't extend it.
	if n == 1 {
		if err := g.store.Expire(ctx, key, g.window).Err(); err != nil {
			g.logger.Warn("login guard expire failed", zap.Error(err))
		}
	}
	return n >= g.maxFailures
}

func (g *RedisLoginGuard) Reset(ctx context.Context, username string) {
	if err := g.store.Del(ctx, lockoutKey(username)).Err(); err != nil {
		g.logger.Warn("login guard reset failed", zap.Error(err))
	}
}

// NoopLoginGuard never locks anyone out.
type NoopLoginGuard struct{}

func (NoopLoginGuard) Locked(context.Context, string) bool        { return false }
func (NoopLoginGuard) RecordFailure(context.Context, string) bool { return false }
func (NoopLoginGuard) Reset(context.Context, string)              {}
