package occurrencescheduler

import (
	"context"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange string, key string, msg amqp091.Publishing) error
}

// RabbitMQ publishes occurrences to a delayed message exchange, which routes
// them once their delay has passed.
type RabbitMQ struct {
	log        logging.Logger
	channel    amqpChannel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel amqpChannel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if exchange == "" {
		panic(e.NewInvalidArgumentError("exchange", "must not be empty"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) ScheduleOccurrence(ctx context.Context, o expression.Occurrence) error {
	message := schema.FromOccurrence(o)
	body, err := message.Marshal()
	if err != nil {
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, amqp091.Publishing{
		Headers:      amqp091.Table{"x-delay": o.Delay.Milliseconds()},
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    o.ID,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("occurrenceId", o.ID))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("occurrenceId", o.ID),
		logging.Entry("delay", o.Delay.String()),
	)
	return nil
}
