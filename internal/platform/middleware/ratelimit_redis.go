package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter is a fixed-window limiter shared by every server instance
// pointed at the same Redis.
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter allows cfg.BurstSize requests per window, where the window
// is sized so the long-run rate matches cfg.RequestsPerSecond.
func NewRedisLimiter(rdb redis.Scripter, cfg RateLimitConfig, prefix string) (*RedisLimiter, error) {
	if cfg.RequestsPerSecond <= 0 || cfg.BurstSize <= 0 {
		return nil, fmt.Errorf("rate limiter requires positive rate and burst")
	}
	if prefix == "" {
		prefix = "hms:ratelimit"
	}
	window := time.Duration(float64(cfg.BurstSize) / cfg.RequestsPerSecond * float64(time.Second))
	if window < time.Millisecond {
		window = time.Millisecond
	}
	return &RedisLimiter{rdb: rdb, limit: cfg.BurstSize, window: window, prefix: prefix, now: time.Now}, nil
}

func (l *RedisLimiter) Limit() int { return l.limit }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	windowMs := l.window.Milliseconds()
	if windowMs <= 0 {
		windowMs = 1
	}
	nowMs := l.now().UnixMilli()
	slot := nowMs / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	count, err := fixedWindowScript.Run(ctx, l.rdb, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script: %w", err)
	}
	if count > int64(l.limit) {
		return false, time.Duration((slot+1)*windowMs-nowMs) * time.Millisecond, nil
	}
	return true, 0, nil
}
