package consumers

import (
	"context"
	"eventual/internal/app/deps"
	"eventual/internal/app/services"
	dl "eventual/internal/core/domain/logging"
	occurrencedue "eventual/internal/rabbitmq/consumers/occurrence_due"
)

func initOccurrenceDueConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	consumer := occurrencedue.New(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqOccurrenceDueQueue,
		services.AnnounceOccurrence,
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.Run(ctx)
		close(done)
	}()

	return func() {
		cancel()
		rabbitmqChannel.Close()
		<-done
		deps.Logger.Info(context.Background(), "Consumer has stopped.")
	}
}

// InitConsumers starts the RabbitMQ consumers. There are none in test mode.
func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	if deps.Config.IsTestMode {
		return func() {}
	}
	shutdownOccurrenceDueConsumer := initOccurrenceDueConsumer(deps, services)

	return func() {
		shutdownOccurrenceDueConsumer()
	}
}
