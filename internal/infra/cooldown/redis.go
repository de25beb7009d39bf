package cooldown

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"habit/internal/domain/service"
	"habit/internal/errors"
)

// RedisLimiter stores one key per cooldown window using SET NX with an expiry.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

var _ service.CooldownLimiter = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter namespacing keys under prefix.
func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

func (l *RedisLimiter) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	redisKey := l.prefix + key

	// A key expiring between SETNX and PTTL gets a second chance.
	for range 2 {
		ok, err := l.client.SetNX(ctx, redisKey, time.Now().UnixMilli(), window).Result()
		if err != nil {
			return false, 0, errors.Wrap(err, "redis SETNX")
		}
		if ok {
			return true, 0, nil
		}

		ttl, err := l.client.PTTL(ctx, redisKey).Result()
		if err != nil {
			return false, 0, errors.Wrap(err, "redis PTTL")
		}
		if ttl > 0 {
			return false, ttl, nil
		}
		if ttl == -1 {
			// A key without expiry would block forever.
			if err := l.client.PExpire(ctx, redisKey, window).Err(); err != nil {
				return false, 0, errors.Wrap(err, "redis PEXPIRE")
			}

			return false, window, nil
		}
	}

	return false, window, nil
}
