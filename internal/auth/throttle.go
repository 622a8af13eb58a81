package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const throttleKeyPrefix = "jobly:login_failures:"

// LoginThrottle locks a username out after repeated failed logins. Counters
// live in Redis with a TTL equal to the lockout window. Redis failures never
// block a login; they are logged and the attempt is allowed.
type LoginThrottle struct {
	client      redis.Cmdable
	maxFailures int
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle builds a throttle. A nil client or a non-positive
// maxFailures disables it.
func NewLoginThrottle(client redis.Cmdable, maxFailures int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures, window: window, logger: logger}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.client != nil && t.maxFailures > 0 && t.window > 0
}

func throttleKey(username string) string {
	return throttleKeyPrefix + strings.ToLower(username)
}

// Allow reports whether username may attempt a login.
func (t *LoginThrottle) Allow(ctx context.Context, username string) bool {
	if !t.enabled() {
		return true
	}
	failures, err := t.client.Get(ctx, throttleKey(username)).Int()
	if errors.Is(err, redis.Nil) {
		return true
	}
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return true
	}
	return failures < t.maxFailures
}

// RecordFailure counts a failed attempt and refreshes the lockout window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) {
	if !t.enabled() {
		return
	}
	key := throttleKey(username)
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, t.window)
		return nil
	})
	if err != nil {
		t.logger.Warn("login throttle record failed", zap.Error(err))
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) {
	if !t.enabled() {
		return
	}
	if err := t.client.Del(ctx, throttleKey(username)).Err(); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}
