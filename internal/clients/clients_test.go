package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSONSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"booking_id":"B1","status":"PENDING"}`))
	}))
	defer srv.Close()

	client := NewTicket(srv.URL)

	booking, err := client.GetBooking(context.Background(), "tok", "B1")
	require.NoError(t, err)

	assert.Equal(t, "B1", booking.BookingID)
	assert.Equal(t, "PENDING", string(booking.Status))
}

func TestDoJSONNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"booking not found"}`))
	}))
	defer srv.Close()

	client := NewTicket(srv.URL)

	_, err := client.GetBooking(context.Background(), "tok", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoJSONStatusErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"invalid status transition"}`))
	}))
	defer srv.Close()

	client := NewTicket(srv.URL)

	err := client.Confirm(context.Background(), "tok", "B1")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "invalid status transition", statusErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx must not be retried")
}

func TestDoJSONTransportErrorRetried(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	srv.Close() // connection refused from the first attempt

	client := NewTicket(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // do not wait out the backoff in tests

	err := client.Confirm(ctx, "tok", "B1")
	assert.Error(t, err)
}

func TestGetCapacityUnavailableMeansZero(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewEvents(srv.URL)

	assert.Equal(t, 0, client.GetCapacity(context.Background(), "tok", "E1"))
}
