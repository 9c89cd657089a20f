package logsink

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
)

const reconnectDelay = 5 * time.Second

// LogStore persists one consumed record per row.
type LogStore interface {
	InsertLog(ctx context.Context, rec *models.LogRecord) error
}

// Consumer drains the durable log queue into Postgres. It owns its broker
// connection and reconnects with a fixed backoff when the broker drops.
type Consumer struct {
	log     *slog.Logger
	storage LogStore
	url     string
	queue   string
}

func New(log *slog.Logger, storage LogStore, url, queue string) *Consumer {
	return &Consumer{
		log:     log,
		storage: storage,
		url:     url,
		queue:   queue,
	}
}

// Run blocks until ctx is canceled, reconnecting on any broker failure.
func (c *Consumer) Run(ctx context.Context) {
	const op = "logsink.Consumer.Run"

	log := c.log.With(slog.String("op", op))

	for {
		if err := c.consume(ctx); err != nil {
			log.Error("consumer stopped", sl.Err(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return err
	}

	if err = ch.Qos(1, 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.log.Info("consuming logs", slog.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			c.handle(ctx, d)
		}
	}
}

// handle acks every delivery, including on storage failure. A poison or
// unstorable message must not wedge the queue head; the record is lost and
// the failure is logged locally instead.
func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	const op = "logsink.Consumer.handle"

	log := c.log.With(slog.String("op", op))

	defer func() {
		if err := d.Ack(false); err != nil {
			log.Error("failed to ack delivery", sl.Err(err))
		}
	}()

	var rec models.LogRecord
	if err := json.Unmarshal(d.Body, &rec); err != nil {
		log.Error("failed to decode log record", sl.Err(err))
		return
	}

	if rec.ServiceName == "" || rec.Level == "" {
		log.Warn("dropping record without service or level")
		return
	}

	if err := c.storage.InsertLog(ctx, &rec); err != nil {
		log.Error("failed to store log record", sl.Err(err))
	}
}
