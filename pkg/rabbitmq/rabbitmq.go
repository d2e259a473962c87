package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// EventsQueue receives every wardrobe domain event.
const EventsQueue = "wardrobe_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp.Channel is not safe for concurrent publishes
	log     *zap.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL    string
	Logger *zap.Logger
}

// Event is the JSON envelope written to the queue.
type Event struct {
	Event     string                 `json:"event"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the events queue.
func NewClient(cfg Config) (*Client, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareEventsQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", EventsQueue, err)
	}

	log.Info("RabbitMQ client connected", zap.String("queue", EventsQueue))

	return &Client{
		conn:    conn,
		channel: ch,
		log:     log,
	}, nil
}

func declareEventsQueue(ch *amqp.Channel) (amqp.Queue, error) {
	return ch.QueueDeclare(
		EventsQueue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
}

// Close closes the RabbitMQ connection and channel.
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
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Marshal builds the persistent message for one event.
func Marshal(event string, payload map[string]interface{}, at time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(Event{Event: event, Payload: payload, Timestamp: at.UTC()})
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         event,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    at,
	}, nil
}

// Publish sends one event to the events queue through the default exchange.
func (c *Client) Publish(event string, payload map[string]interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := Marshal(event, payload, time.Now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",          // exchange: default exchange
		EventsQueue, // routing key: the queue name
		false,       // mandatory
		false,       // immediate
		msg)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug("event published", zap.String("event", event))
	return nil
}

// ConsumeEvents starts a goroutine that hands every message on the events queue to
// handler. Messages are acked on success and requeued once on failure; a message
// that already failed once is dropped.
func (c *Client) ConsumeEvents(handler func(Event) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareEventsQueue(c.channel)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info("waiting for wardrobe events", zap.String("queue", queue.Name))

	go func() {
		for msg := range msgs {
			c.handle(msg, handler)
		}
	}()
	return nil
}

func (c *Client) handle(msg amqp.Delivery, handler func(Event) error) {
	var ev Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		c.log.Warn("dropping malformed event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		if err := msg.Reject(false); err != nil {
			c.log.Error("failed to reject message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		}
		return
	}

	if err := handler(ev); err != nil {
		c.log.Warn("event handler failed", zap.String("event", ev.Event), zap.Bool("redelivered", msg.Redelivered), zap.Error(err))
		if err := msg.Nack(false, !msg.Redelivered); err != nil {
			c.log.Error("failed to nack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		c.log.Error("failed to ack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
	}
}

// AuditHandler returns a handler that logs every consumed event.
func AuditHandler(log *zap.Logger) func(Event) error {
	return func(ev Event) error {
		log.Info("wardrobe event",
			zap.String("event", ev.Event),
			zap.Time("at", ev.Timestamp),
			zap.Any("payload", ev.Payload))
		return nil
	}
}
