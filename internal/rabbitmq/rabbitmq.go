package rabbitmq

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"mindlog/internal/core/domain/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

// reconnectDelay is how long to wait between reconnection attempts.
const reconnectDelay = 3 * time.Second

// Connection wraps amqp.Connection with automatic reconnection.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{Connection: conn, log: log}
	go connection.reconnect(url)
	return connection, nil
}

func (c *Connection) reconnect(url string) {
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(context.Background(), "RabbitMQ connection closed.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)

			conn, err := amqp.Dial(url)
			if err == nil {
				c.Connection = conn
				c.log.Info(context.Background(), "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

// Channel returns an auto reconnecting channel.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{Channel: ch, log: c.log}
	go channel.recreate(c)
	return channel, nil
}

// Channel wraps amqp.Channel, recreating it after broker-side closes.
type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

func (ch *Channel) recreate(c *Connection) {
	for {
		reason, ok := <-ch.Channel.NotifyClose(make(chan *amqp.Error))
		// exit if closed by developer
		if !ok || ch.IsClosed() {
			ch.Close() // close again, ensure closed flag set when connection closed
			return
		}

		ch.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)

			newCh, err := c.Connection.Channel()
			if err == nil {
				ch.log.Info(context.Background(), "Channel recreate success.")
				ch.Channel = newCh
				break
			}
			ch.log.Error(context.Background(), "Channel recreate failed.", logging.Entry("err", err))
		}
	}
}

// IsClosed indicates whether the channel was closed by the developer.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

// Close ensures the closed flag gets set.
func (ch *Channel) Close() error {
	if ch.IsClosed() {
		return amqp.ErrClosed
	}
	atomic.StoreInt32(&ch.closed, 1)
	return ch.Channel.Close()
}

// Consume wraps amqp.Channel.Consume. The returned delivery channel
// ends only when the channel is closed by the developer, surviving
// broker-side interruptions.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		for {
			d, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
				time.Sleep(reconnectDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// sleep before the IsClosed call, the closed flag may not
			// be set yet
			time.Sleep(reconnectDelay)

			if ch.IsClosed() {
				ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				break
			}
		}
	}()

	return deliveries, nil
}
