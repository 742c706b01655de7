package rabbitmq

import (
	"context"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/logging"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"gopkg.in/cenkalti/backoff.v1"
)

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Connection redials the broker whenever the underlying connection drops.
type Connection struct {
	url  string
	log  logging.Logger
	lock sync.RWMutex
	conn *amqp.Connection
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("could not dial RabbitMQ: %w", err)
	}
	connection := &Connection{url: url, log: log, conn: conn}
	go connection.watch(conn)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) watch(conn *amqp.Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))

		b := newBackOff()
		for {
			time.Sleep(b.NextBackOff())
			next, err := amqp.Dial(c.url)
			if err != nil {
				c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
				continue
			}
			c.lock.Lock()
			c.conn = next
			c.lock.Unlock()
			conn = next
			c.log.Info(ctx, "RabbitMQ reconnect success.")
			break
		}
	}
}

func (c *Connection) Close() error {
	return c.current().Close()
}

// Channel opens a channel that is reopened after it is closed by the broker.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}
	channel := &Channel{conn: c, ch: ch, log: c.log}
	go channel.watch(ch)
	return channel, nil
}

type Channel struct {
	conn   *Connection
	log    logging.Logger
	lock   sync.RWMutex
	ch     *amqp.Channel
	closed int32
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) watch(current *amqp.Channel) {
	ctx := context.Background()
	for {
		reason, ok := <-current.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			return
		}
		ch.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))

		b := newBackOff()
		for !ch.IsClosed() {
			time.Sleep(b.NextBackOff())
			next, err := ch.conn.current().Channel()
			if err != nil {
				ch.log.Error(ctx, "Channel recreate failed.", logging.Entry("err", err))
				continue
			}
			ch.lock.Lock()
			ch.ch = next
			ch.lock.Unlock()
			current = next
			ch.log.Info(ctx, "Channel recreate success.")
			break
		}
	}
}

func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

func (ch *Channel) PublishWithContext(ctx context.Context, exchange string, key string, msg amqp.Publishing) error {
	return ch.current().PublishWithContext(ctx, exchange, key, false, false, msg)
}

// DeclareDelayed declares a delayed message exchange and a durable queue bound to it
// with the given routing key.
func (ch *Channel) DeclareDelayed(exchange string, queue string, key string) error {
	current := ch.current()
	err := current.ExchangeDeclare(
		exchange,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return fmt.Errorf("could not declare exchange %q: %w", exchange, err)
	}
	if _, err := current.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("could not declare queue %q: %w", queue, err)
	}
	if err := current.QueueBind(queue, key, exchange, false, nil); err != nil {
		return fmt.Errorf("could not bind queue %q: %w", queue, err)
	}
	return nil
}

// Consume delivers messages from queue until the channel is closed with Close.
// Consumption restarts after the broker closes the channel.
func (ch *Channel) Consume(queue string) <-chan amqp.Delivery {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		ctx := context.Background()
		b := newBackOff()
		for !ch.IsClosed() {
			d, err := ch.current().Consume(queue, "", false, false, false, false, nil)
			if err != nil {
				ch.log.Error(ctx, "Consume failed.", logging.Entry("err", err), logging.Entry("queue", queue))
				time.Sleep(b.NextBackOff())
				continue
			}
			b.Reset()
			for msg := range d {
				deliveries <- msg
			}
			time.Sleep(b.NextBackOff())
		}
		ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries
}
