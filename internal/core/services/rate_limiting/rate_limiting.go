package ratelimiting

import (
	"context"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/logging"
	ratelimiter "eventual/internal/core/domain/rate_limiter"
	"eventual/internal/core/services"
)

type hasRateLimitKey interface {
	GetRateLimitKey() string
}

type serviceWithRateLimiting[T hasRateLimitKey, S any] struct {
	log         logging.Logger
	rateLimiter ratelimiter.RateLimiter
	rateLimit   ratelimiter.Limit
	inner       services.Service[T, S]
}

// WithRateLimiting rejects calls once the caller identified by the input's
// rate limit key has used up its limit. A zero limit disables the check.
func WithRateLimiting[T hasRateLimitKey, S any](
	log logging.Logger,
	rateLimiter ratelimiter.RateLimiter,
	rateLimit ratelimiter.Limit,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithRateLimiting[T, S]{
		log:         log,
		rateLimiter: rateLimiter,
		rateLimit:   rateLimit,
		inner:       inner,
	}
}

func (s *serviceWithRateLimiting[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	if s.rateLimit.Value == 0 {
		return s.inner.Run(ctx, input)
	}

	key := input.GetRateLimitKey()
	rate := s.rateLimiter.CheckLimit(ctx, key, s.rateLimit)
	if rate.IsAllowed {
		return s.inner.Run(ctx, input)
	}

	s.log.Warning(
		ctx,
		"Rate limit exceeded.",
		logging.Entry("key", key),
		logging.Entry("resetIn", rate.ResetIn.String()),
	)
	return result, &ratelimiter.ExceededError{Key: key, ResetIn: rate.ResetIn}
}
