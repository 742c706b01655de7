package resolveexpression

import (
	"context"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

type serviceWithCache struct {
	log   logging.Logger
	cache expression.ValuesCache
	ttl   time.Duration
	inner services.Service[Input, Result]
	group singleflight.Group
}

// WithCache serves repeated expressions from the cache. Concurrent misses for
// the same expression share a single resolution. Truncated results are not cached.
func WithCache(
	log logging.Logger,
	cache expression.ValuesCache,
	ttl time.Duration,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cache == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithCache{log: log, cache: cache, ttl: ttl, inner: inner}
}

func CacheKey(input Input) string {
	lang := input.Language
	if lang == "" {
		lang = expression.DefaultLanguage
	}
	raw := fmt.Sprintf("%s|%s|%s", lang, input.DefaultYear.String(), input.Query)
	return fmt.Sprintf("expression::%016x", xxhash.Sum64String(raw))
}

func (s *serviceWithCache) Run(ctx context.Context, input Input) (Result, error) {
	// Without a default year the result depends on the current year.
	if !input.DefaultYear.IsPresent {
		return s.inner.Run(ctx, input)
	}

	key := CacheKey(input)
	values, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warning(ctx, "Could not read cached expression.", logging.Entry("key", key), logging.Entry("err", err))
	}
	if ok {
		s.log.Debug(ctx, "Expression served from cache.", logging.Entry("key", key))
		return Result{Values: values}, nil
	}

	shared, err, _ := s.group.Do(key, func() (interface{}, error) {
		result, err := s.inner.Run(ctx, input)
		if err != nil || result.Truncated {
			return result, err
		}
		if err := s.cache.Set(ctx, key, result.Values, s.ttl); err != nil {
			s.log.Warning(ctx, "Could not cache expression.", logging.Entry("key", key), logging.Entry("err", err))
		}
		return result, nil
	})
	if err != nil {
		return Result{}, err
	}
	return shared.(Result), nil
}

