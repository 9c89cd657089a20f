package logbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ticketflow/internal/models"
)

const publishTimeout = 10 * time.Second

// Bus is the saga log channel. Every saga step emits one record tagged
// with the transaction id (the booking id) so cross-service activity can
// be reassembled in the sink.
type Bus interface {
	Info(ctx context.Context, msg, transactionID string)
	Error(ctx context.Context, msg, transactionID string)
	Warn(ctx context.Context, msg, transactionID string)
	Close() error
}

// Client publishes records onto a durable queue with persistent delivery.
type Client struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	service string
}

func New(url, queue, service string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	return &Client{conn: conn, ch: ch, queue: queue, service: service}, nil
}

func (c *Client) Info(ctx context.Context, msg, transactionID string) {
	c.publish(ctx, "INFO", msg, transactionID)
}

func (c *Client) Error(ctx context.Context, msg, transactionID string) {
	c.publish(ctx, "ERROR", msg, transactionID)
}

func (c *Client) Warn(ctx context.Context, msg, transactionID string) {
	c.publish(ctx, "WARNING", msg, transactionID)
}

// publish is fire-and-forget: a dead broker must never fail a saga step.
func (c *Client) publish(ctx context.Context, level, msg, transactionID string) {
	body, err := json.Marshal(models.LogRecord{
		ServiceName:   c.service,
		Level:         level,
		Message:       msg,
		TransactionID: transactionID,
	})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_ = c.ch.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (c *Client) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Nop discards all records; used when AMQP_URL is unset and in tests.
type Nop struct{}

func NewNop() Nop { return Nop{} }

func (Nop) Info(context.Context, string, string)  {}
func (Nop) Error(context.Context, string, string) {}
func (Nop) Warn(context.Context, string, string)  {}
func (Nop) Close() error                          { return nil }

// FromConfig returns a broker-backed bus when url is set, Nop otherwise.
func FromConfig(url, queue, service string) (Bus, error) {
	if url == "" {
		return NewNop(), nil
	}
	return New(url, queue, service)
}
