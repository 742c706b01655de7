package streamexpression

import (
	"context"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"

	"github.com/google/uuid"
)

const truncatedMessage = "truncated"

type Input struct {
	StreamID    string
	Query       string
	Language    expression.Language
	DefaultYear c.Optional[int]
	ClientKey   string
}

func (i Input) GetRateLimitKey() string {
	return "stream-expression::" + i.ClientKey
}

type Result struct {
	StreamID  string
	Published int
	Failed    bool
}

type service struct {
	log       logging.Logger
	parser    expression.SequenceParser
	publisher expression.ValuePublisher
	maxValues int
}

// New publishes the values of an expression one by one. Text that does not
// parse is reported to the caller. Failures found while expanding are
// published as an error event after the values that precede them.
func New(
	log logging.Logger,
	parser expression.SequenceParser,
	publisher expression.ValuePublisher,
	maxValues int,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if parser == nil {
		panic(e.NewNilArgumentError("parser"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	return &service{log: log, parser: parser, publisher: publisher, maxValues: maxValues}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	seq, err := s.parser.Parse(ctx, input.Query, expression.Options{
		Language:    input.Language,
		DefaultYear: input.DefaultYear,
	})
	if err != nil {
		if !expression.IsInputError(err) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	result.StreamID = input.StreamID
	if result.StreamID == "" {
		result.StreamID = uuid.NewString()
	}
	if err := s.publisher.OpenStream(ctx, result.StreamID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("streamId", result.StreamID))
		return Result{}, err
	}

	var publishErr error
	truncated := false
	expandErr := seq.Each(func(v calendar.Value) bool {
		if s.maxValues > 0 && result.Published == s.maxValues {
			truncated = true
			return false
		}
		publishErr = s.publisher.Publish(ctx, result.StreamID, expression.StreamEvent{
			Kind:  expression.ValueEvent,
			Value: v,
		})
		if publishErr != nil {
			return false
		}
		result.Published++
		return true
	})
	if publishErr != nil {
		logging.Error(ctx, s.log, publishErr, logging.Entry("streamId", result.StreamID))
		return Result{}, publishErr
	}

	last := expression.StreamEvent{Kind: expression.EndEvent}
	if truncated {
		last.Message = truncatedMessage
	}
	if expandErr != nil {
		result.Failed = true
		last = expression.StreamEvent{Kind: expression.ErrorEvent, Message: expandErr.Error()}
		s.log.Info(
			ctx,
			"Stream ended with an error.",
			logging.Entry("streamId", result.StreamID),
			logging.Entry("err", expandErr),
		)
	}
	if err := s.publisher.Publish(ctx, result.StreamID, last); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("streamId", result.StreamID))
		return Result{}, err
	}

	s.log.Info(
		ctx,
		"Stream has been published.",
		logging.Entry("streamId", result.StreamID),
		logging.Entry("published", result.Published),
	)
	return result, nil
}
