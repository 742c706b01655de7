package sequencecache

import (
	"context"
	"encoding/json"
	"errors"
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

type Redis struct {
	redisClient *redis.Client
}

func NewRedis(redisClient *redis.Client) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient}
}

func (r *Redis) Get(ctx context.Context, key string) ([]calendar.Value, bool, error) {
	raw, err := r.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	values, err := decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("could not decode cached values for %q: %w", key, err)
	}
	return values, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, values []calendar.Value, ttl time.Duration) error {
	raw, err := encode(values)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, key, raw, ttl).Err()
}

func encode(values []calendar.Value) ([]byte, error) {
	if values == nil {
		values = []calendar.Value{}
	}
	return json.Marshal(values)
}

func decode(raw []byte) ([]calendar.Value, error) {
	values := []calendar.Value{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}
