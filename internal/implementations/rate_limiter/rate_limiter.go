package ratelimiter

import (
	"context"
	"errors"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/logging"
	ratelimiter "eventual/internal/core/domain/rate_limiter"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis counts calls in fixed windows aligned to the limit interval.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, resetIn := window(key, limit.Interval, r.now())

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, limit.Interval.Duration())
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed(resetIn)
	}
	if err != nil {
		r.log.Error(ctx, "Could not check rate limit due to Redis client error.", logging.Entry("err", err))
		return ratelimiter.Allowed(int(limit.Value))
	}
	used := cmds[0].(*redis.IntCmd).Val()
	if used > int64(limit.Value) {
		return ratelimiter.NotAllowed(resetIn)
	}
	return ratelimiter.Allowed(int(int64(limit.Value) - used))
}

// window names the counter for the interval that contains now and reports
// how long that interval still lasts.
func window(key string, interval ratelimiter.Interval, now time.Time) (string, time.Duration) {
	d := interval.Duration()
	start := now.Truncate(d)
	var k string
	switch interval {
	case ratelimiter.Second:
		k = fmt.Sprintf("%s::s%d", key, start.Second())
	case ratelimiter.Minute:
		k = fmt.Sprintf("%s::m%d", key, start.Minute())
	case ratelimiter.Hour:
		k = fmt.Sprintf("%s::h%d", key, start.Hour())
	default:
		panic("invalid rate limiting interval")
	}
	return k, start.Add(d).Sub(now)
}
