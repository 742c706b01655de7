package announceoccurrence

import (
	"context"
	"errors"
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"
)

// OccurrencesStream is the stream every due occurrence is announced on.
const OccurrencesStream = "occurrences"

type Input struct {
	ID    string
	Query string
	Value calendar.Value
}

type Result struct{}

type service struct {
	log       logging.Logger
	publisher expression.ValuePublisher
}

func New(log logging.Logger, publisher expression.ValuePublisher) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	return &service{log: log, publisher: publisher}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.publisher.OpenStream(ctx, OccurrencesStream)
	if err != nil && !errors.Is(err, expression.ErrStreamExists) {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	err = s.publisher.Publish(ctx, OccurrencesStream, expression.StreamEvent{
		Kind:    expression.ValueEvent,
		Value:   input.Value,
		Message: input.ID,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Occurrence has been announced.",
		logging.Entry("id", input.ID),
		logging.Entry("value", input.Value.String()),
	)
	return result, nil
}
