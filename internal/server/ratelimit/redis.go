package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jablog/internal/logging"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "jablog:ratelimit:"

// RedisLimiter shares windows between server instances. When Redis is
// unreachable it fails open and logs.
type RedisLimiter struct {
	client  redis.UniversalClient
	logger  logging.Logger
	timeout time.Duration
}

func NewRedisLimiter(client redis.UniversalClient, logger logging.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, logger: logger, timeout: 250 * time.Millisecond}
}

// DialRedis connects and pings before handing back the client.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, win time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}
	if win <= 0 {
		win = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := keyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, redisKey)
		p.ExpireNX(ctx, redisKey, win)
		ttl = p.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		l.logger.Error(ctx, "redis rate limiter error", "op", "incr", "error", err)
		return Decision{Allowed: true}
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = win
	}
	count := int(incr.Val())
	return Decision{
		Allowed:   count <= limit,
		Count:     count,
		WindowEnd: time.Now().Add(remaining),
	}
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
