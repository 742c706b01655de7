package scheduleoccurrences

import (
	"context"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"
	"time"

	"github.com/google/uuid"
)

type Input struct {
	Query       string
	Language    expression.Language
	DefaultYear c.Optional[int]
	ClientKey   string
}

func (i Input) GetRateLimitKey() string {
	return "schedule-occurrences::" + i.ClientKey
}

type Result struct {
	Scheduled []expression.Occurrence
	Truncated bool
}

type service struct {
	log       logging.Logger
	parser    expression.SequenceParser
	scheduler expression.OccurrenceScheduler
	now       func() time.Time
	limit     int
}

func New(
	log logging.Logger,
	parser expression.SequenceParser,
	scheduler expression.OccurrenceScheduler,
	now func() time.Time,
	limit int,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if parser == nil {
		panic(e.NewNilArgumentError("parser"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, parser: parser, scheduler: scheduler, now: now, limit: limit}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	defer func() {
		if err == nil {
			return
		}
		if expression.IsInputError(err) {
			s.log.Info(ctx, "Occurrences could not be scheduled.", logging.Entry("query", input.Query), logging.Entry("err", err))
		} else {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
	}()

	seq, err := s.parser.Parse(ctx, input.Query, expression.Options{
		Language:    input.Language,
		DefaultYear: input.DefaultYear,
	})
	if err != nil {
		return result, err
	}

	now := calendar.FromTime(s.now())
	pending := []expression.Occurrence{}
	err = seq.Each(func(v calendar.Value) bool {
		if !v.After(now) {
			return true
		}
		if s.limit > 0 && len(pending) == s.limit {
			result.Truncated = true
			return false
		}
		pending = append(pending, expression.Occurrence{
			ID:    uuid.NewString(),
			Query: input.Query,
			Value: v,
			Delay: v.Time().Sub(now.Time()),
		})
		return true
	})
	if err != nil {
		return Result{}, err
	}

	// Values are resolved in full before anything is scheduled so that a
	// malformed fragment schedules nothing.
	result.Scheduled = make([]expression.Occurrence, 0, len(pending))
	for _, o := range pending {
		if err := s.scheduler.ScheduleOccurrence(ctx, o); err != nil {
			return Result{}, err
		}
		result.Scheduled = append(result.Scheduled, o)
	}

	s.log.Info(
		ctx,
		"Occurrences have been scheduled.",
		logging.Entry("query", input.Query),
		logging.Entry("count", len(result.Scheduled)),
		logging.Entry("truncated", result.Truncated),
	)
	return result, nil
}
