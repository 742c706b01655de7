package checkmembership

import (
	"context"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"
	"time"
)

type Input struct {
	Query       string
	Language    expression.Language
	DefaultYear c.Optional[int]
	EventSpan   time.Duration
	At          calendar.Value
	ClientKey   string
}

func (i Input) GetRateLimitKey() string {
	return "check-membership::" + i.ClientKey
}

type Result struct {
	Contains bool
}

type service struct {
	log    logging.Logger
	parser expression.SequenceParser
}

func New(log logging.Logger, parser expression.SequenceParser) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if parser == nil {
		panic(e.NewNilArgumentError("parser"))
	}
	return &service{log: log, parser: parser}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	seq, err := s.parser.Parse(ctx, input.Query, expression.Options{
		Language:    input.Language,
		DefaultYear: input.DefaultYear,
		EventSpan:   input.EventSpan,
	})
	if err == nil {
		result.Contains, err = seq.Contains(input.At)
	}
	if err != nil {
		if expression.IsInputError(err) {
			s.log.Info(ctx, "Membership could not be checked.", logging.Entry("query", input.Query), logging.Entry("err", err))
		} else {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return Result{}, err
	}
	return result, nil
}
