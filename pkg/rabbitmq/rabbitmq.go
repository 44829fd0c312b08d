package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bloombuilder/internal/models"
	"bloombuilder/pkg/logger"

	amqp "github.com/streadway/amqp"
)

// DefaultQueue receives every inventory change event.
const DefaultQueue = "flower_events"

// channel is the subset of *amqp.Channel the client uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel channel
	queue   string
	log     *logger.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// Queue defaults to DefaultQueue.
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event queue.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client, err := newClient(ch, cfg.Queue, log)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

func newClient(ch channel, queue string, log *logger.Logger) (*Client, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if log == nil {
		log = logger.Nop()
	}
	if _, err := declareQueue(ch, queue); err != nil {
		return nil, err
	}
	log.Info(context.Background(), "RabbitMQ client connected and "+queue+" declared")
	return &Client{channel: ch, queue: queue, log: log}, nil
}

func declareQueue(ch channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishFlowerEvent publishes event as persistent JSON on the event queue.
func (c *Client) PublishFlowerEvent(ctx context.Context, event models.FlowerEvent) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal flower event: %w", err)
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	c.log.Debug(ctx, fmt.Sprintf("sent %s for flower %s", event.Type, event.FlowerID))
	return nil
}

// ConsumeFlowerEvents delivers decoded events to handler until the channel
// closes. Handler failures requeue the message; undecodable messages are dropped.
func (c *Client) ConsumeFlowerEvents(handler func(models.FlowerEvent) error) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel, c.queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			c.handleDelivery(msg, handler)
		}
	}()

	return nil
}

// acknowledger is satisfied by amqp.Delivery.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Client) handleDelivery(msg amqp.Delivery, handler func(models.FlowerEvent) error) {
	c.settle(&msg, msg.DeliveryTag, msg.Body, handler)
}

func (c *Client) settle(ack acknowledger, tag uint64, body []byte, handler func(models.FlowerEvent) error) {
	ctx := context.Background()

	var event models.FlowerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.log.Warn(ctx, fmt.Sprintf("dropping undecodable message %d", tag), err)
		if nackErr := ack.Nack(false, false); nackErr != nil {
			c.log.Error(ctx, fmt.Sprintf("failed to nack message %d", tag), nackErr)
		}
		return
	}

	if err := handler(event); err != nil {
		c.log.Warn(ctx, fmt.Sprintf("failed to process message %d, requeueing", tag), err)
		if nackErr := ack.Nack(false, true); nackErr != nil {
			c.log.Error(ctx, fmt.Sprintf("failed to nack message %d", tag), nackErr)
		}
		return
	}

	if ackErr := ack.Ack(false); ackErr != nil {
		c.log.Error(ctx, fmt.Sprintf("failed to ack message %d", tag), ackErr)
	}
}

// LogFlowerEvent is a handler that records each event on log.
func LogFlowerEvent(log *logger.Logger) func(models.FlowerEvent) error {
	return func(event models.FlowerEvent) error {
		ctx := log.WithField(context.Background(), "flower_id", event.FlowerID)
		log.Info(ctx, fmt.Sprintf("received %s event at %s", event.Type, event.OccurredAt.Format(time.RFC3339)))
		return nil
	}
}
