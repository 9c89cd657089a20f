package logsink

import (
	"context"
	"errors"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	records []*models.LogRecord
	err     error
}

func (s *fakeStore) InsertLog(_ context.Context, rec *models.LogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

type fakeAcknowledger struct {
	mu    sync.Mutex
	acked int
}

func (a *fakeAcknowledger) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked++
	return nil
}

func (a *fakeAcknowledger) Nack(uint64, bool, bool) error { return nil }
func (a *fakeAcknowledger) Reject(uint64, bool) error     { return nil }

func delivery(ack *fakeAcknowledger, body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body)}
}

func TestHandleStoresAndAcks(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	ack := &fakeAcknowledger{}
	c := New(slogdiscard.NewDiscardLogger(), store, "amqp://ignored", "logs_queue")

	c.handle(context.Background(), delivery(ack, `{"service_name":"billing","level":"INFO","message":"refund processed","transaction_id":"b-1"}`))

	require.Len(t, store.records, 1)
	assert.Equal(t, "billing", store.records[0].ServiceName)
	assert.Equal(t, "b-1", store.records[0].TransactionID)
	assert.Equal(t, 1, ack.acked)
}

func TestHandleAcksOnStoreFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{err: errors.New("db down")}
	ack := &fakeAcknowledger{}
	c := New(slogdiscard.NewDiscardLogger(), store, "amqp://ignored", "logs_queue")

	c.handle(context.Background(), delivery(ack, `{"service_name":"billing","level":"ERROR","message":"x"}`))

	assert.Empty(t, store.records)
	assert.Equal(t, 1, ack.acked, "storage failure must not wedge the queue")
}

func TestHandleAcksPoisonMessage(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	ack := &fakeAcknowledger{}
	c := New(slogdiscard.NewDiscardLogger(), store, "amqp://ignored", "logs_queue")

	c.handle(context.Background(), delivery(ack, `not json at all`))

	assert.Empty(t, store.records)
	assert.Equal(t, 1, ack.acked)
}

func TestHandleDropsRecordWithoutService(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	ack := &fakeAcknowledger{}
	c := New(slogdiscard.NewDiscardLogger(), store, "amqp://ignored", "logs_queue")

	c.handle(context.Background(), delivery(ack, `{"message":"orphan"}`))

	assert.Empty(t, store.records)
	assert.Equal(t, 1, ack.acked)
}
