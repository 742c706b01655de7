package resolveexpression

import (
	"context"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"
)

type Input struct {
	Query       string
	Language    expression.Language
	DefaultYear c.Optional[int]
	ClientKey   string
}

func (i Input) GetRateLimitKey() string {
	return "resolve-expression::" + i.ClientKey
}

type Result struct {
	Values    []calendar.Value
	Truncated bool
}

type service struct {
	log       logging.Logger
	parser    expression.SequenceParser
	maxValues int
}

func New(
	log logging.Logger,
	parser expression.SequenceParser,
	maxValues int,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if parser == nil {
		panic(e.NewNilArgumentError("parser"))
	}
	return &service{log: log, parser: parser, maxValues: maxValues}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	seq, err := s.parser.Parse(
		ctx,
		input.Query,
		expression.Options{Language: input.Language, DefaultYear: input.DefaultYear},
	)
	if err != nil {
		s.logFailure(ctx, err, input)
		return result, err
	}

	result.Values = []calendar.Value{}
	err = seq.Each(func(v calendar.Value) bool {
		if ctx.Err() != nil {
			return false
		}
		if s.maxValues > 0 && len(result.Values) == s.maxValues {
			result.Truncated = true
			return false
		}
		result.Values = append(result.Values, v)
		return true
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.logFailure(ctx, err, input)
		return Result{}, err
	}

	s.log.Info(
		ctx,
		"Expression resolved.",
		logging.Entry("query", input.Query),
		logging.Entry("count", len(result.Values)),
		logging.Entry("truncated", result.Truncated),
	)
	return result, nil
}

func (s *service) logFailure(ctx context.Context, err error, input Input) {
	if expression.IsInputError(err) {
		s.log.Info(ctx, "Expression could not be resolved.", logging.Entry("query", input.Query), logging.Entry("err", err))
		return
	}
	logging.Error(ctx, s.log, err, logging.Entry("input", input))
}
