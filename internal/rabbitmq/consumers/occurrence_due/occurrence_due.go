package occurrencedue

import (
	"context"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/services"
	announceoccurrence "eventual/internal/core/services/announce_occurrence"
	"eventual/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type source interface {
	Consume(queue string) <-chan amqp091.Delivery
}

type Consumer struct {
	log     logging.Logger
	source  source
	queue   string
	service services.Service[announceoccurrence.Input, announceoccurrence.Result]
}

func New(
	log logging.Logger,
	source source,
	queue string,
	service services.Service[announceoccurrence.Input, announceoccurrence.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if source == nil {
		panic(e.NewNilArgumentError("source"))
	}
	if queue == "" {
		panic(e.NewInvalidArgumentError("queue", "must not be empty"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Consumer{log: log, source: source, queue: queue, service: service}
}

// Run handles due occurrences until the deliveries end or ctx is done.
func (c *Consumer) Run(ctx context.Context) {
	deliveries := c.source.Consume(c.queue)
	c.log.Info(ctx, "Consumer has started.", logging.Entry("queue", c.queue))
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	defer c.ack(ctx, delivery)

	o := &schema.Occurrence{}
	if err := o.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal occurrence.",
			logging.Entry("err", err),
			logging.Entry("body", string(delivery.Body)),
		)
		return
	}

	c.log.Info(ctx, "Got due occurrence.", logging.Entry("id", o.ID))
	_, err := c.service.Run(ctx, announceoccurrence.Input{ID: o.ID, Query: o.Query, Value: o.Value})
	if err != nil {
		c.log.Error(
			ctx,
			"Could not announce occurrence, service returned an error.",
			logging.Entry("id", o.ID),
			logging.Entry("err", err),
		)
	}
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
