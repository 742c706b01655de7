package services

import (
	"eventual/internal/app/deps"
	"eventual/internal/config"
	drl "eventual/internal/core/domain/rate_limiter"
	"eventual/internal/core/services"
	announceoccurrence "eventual/internal/core/services/announce_occurrence"
	checkmembership "eventual/internal/core/services/check_membership"
	ratelimiting "eventual/internal/core/services/rate_limiting"
	resolveexpression "eventual/internal/core/services/resolve_expression"
	scheduleoccurrences "eventual/internal/core/services/schedule_occurrences"
	streamexpression "eventual/internal/core/services/stream_expression"
)

type Services struct {
	ResolveExpression   services.Service[resolveexpression.Input, resolveexpression.Result]
	CheckMembership     services.Service[checkmembership.Input, checkmembership.Result]
	ScheduleOccurrences services.Service[scheduleoccurrences.Input, scheduleoccurrences.Result]
	StreamExpression    services.Service[streamexpression.Input, streamexpression.Result]
	AnnounceOccurrence  services.Service[announceoccurrence.Input, announceoccurrence.Result]
}

// rateLimits returns the per-minute limit shared by the query endpoints and
// the hourly limit for scheduling.
func rateLimits(cfg *config.Config) (drl.Limit, drl.Limit) {
	return drl.Limit{Interval: drl.Minute, Value: cfg.RateLimitPerMinute},
		drl.Limit{Interval: drl.Hour, Value: cfg.RateLimitSchedulePerHour}
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}
	limit, scheduleLimit := rateLimits(deps.Config)

	s.ResolveExpression = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		limit,
		resolveexpression.WithCache(
			deps.Logger,
			deps.ValuesCache,
			deps.Config.SequenceCacheTTL,
			resolveexpression.New(deps.Logger, deps.Parser, deps.Config.MaxResolvedValues),
		),
	)
	s.CheckMembership = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		limit,
		checkmembership.New(deps.Logger, deps.Parser),
	)
	s.ScheduleOccurrences = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		scheduleLimit,
		scheduleoccurrences.New(
			deps.Logger,
			deps.Parser,
			deps.OccurrenceScheduler,
			deps.Now,
			deps.Config.MaxScheduledOccurrences,
		),
	)
	s.StreamExpression = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		limit,
		streamexpression.New(deps.Logger, deps.Parser, deps.ValuePublisher, deps.Config.MaxResolvedValues),
	)
	s.AnnounceOccurrence = announceoccurrence.New(deps.Logger, deps.ValuePublisher)

	return s
}
