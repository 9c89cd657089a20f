package webhook

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/http-server/handlers/billing/webhook/mocks"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
	"ticketflow/internal/provider"
)

const testSecret = "whsec_test"

func checkoutPayload(eventID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"payment_intent": "pi_1",
				"amount_total": 5000,
				"currency": "sgd",
				"payment_status": "paid",
				"customer_details": {"email": "buyer@example.com", "name": "Buyer"},
				"metadata": {"booking_id": "b-1", "event_id": "evt-1", "user_id": "user-1"}
			}
		}
	}`, eventID))
}

func signedRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/api/webhook/", bytes.NewReader(payload))
	require.NoError(t, err)

	req.Header.Set(SignatureHeader, provider.SignPayload(payload, testSecret, time.Now()))
	return req
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	payload := checkoutPayload("evt_sig")

	req, err := http.NewRequest(http.MethodPost, "/api/webhook/", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set(SignatureHeader, provider.SignPayload(payload, "wrong-secret", time.Now()))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "signature verification failed")
}

func TestWebhookRejectsStaleTimestamp(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	payload := checkoutPayload("evt_stale")

	req, err := http.NewRequest(http.MethodPost, "/api/webhook/", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set(SignatureHeader, provider.SignPayload(payload, testSecret, time.Now().Add(-10*time.Minute)))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWebhookCheckoutCompleted(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	store.On("HasVerification", mock.Anything, "pi_1", provider.EventCheckoutCompleted, "evt_1").
		Return(false, nil)
	store.On("InsertVerification", mock.Anything, mock.MatchedBy(func(v *models.PaymentVerification) bool {
		return v.PaymentID == "pi_1" &&
			v.ProviderEventID == "evt_1" &&
			v.Amount == 5000 &&
			v.Status == "paid"
	})).Return(nil)
	store.On("UpsertBookingPayment", mock.Anything, mock.MatchedBy(func(bp *models.BookingPayment) bool {
		return bp.BookingID == "b-1" &&
			bp.PaymentIntentID == "pi_1" &&
			bp.Status == models.PaymentStatusPaid &&
			bp.CustomerEmail == "buyer@example.com"
	})).Return(nil)
	confirmer.On("Confirm", mock.Anything, "b-1", "cs_1").Return(nil)

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedRequest(t, checkoutPayload("evt_1")))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
}

func TestWebhookReplaySkipsConfirmFanOut(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	// Replays still append a verification row but must not re-trigger
	// the confirm call.
	store.On("HasVerification", mock.Anything, "pi_1", provider.EventCheckoutCompleted, "evt_replay").
		Return(true, nil)
	store.On("InsertVerification", mock.Anything, mock.Anything).Return(nil)
	store.On("UpsertBookingPayment", mock.Anything, mock.Anything).Return(nil)

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedRequest(t, checkoutPayload("evt_replay")))

	assert.Equal(t, http.StatusOK, rr.Code)
	confirmer.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookAcksWhenConfirmFails(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	store.On("HasVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)
	store.On("InsertVerification", mock.Anything, mock.Anything).Return(nil)
	store.On("UpsertBookingPayment", mock.Anything, mock.Anything).Return(nil)
	confirmer.On("Confirm", mock.Anything, "b-1", "cs_1").Return(errors.New("connection refused"))

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedRequest(t, checkoutPayload("evt_down")))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
}

func TestWebhookChargeRefunded(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	payload := []byte(`{
		"id": "evt_rf",
		"type": "charge.refunded",
		"data": {
			"object": {
				"id": "ch_1",
				"payment_intent": "pi_1",
				"amount": 5000,
				"currency": "sgd",
				"status": "succeeded",
				"refunded": true,
				"metadata": {"booking_id": "b-1"}
			}
		}
	}`)

	store.On("InsertVerification", mock.Anything, mock.MatchedBy(func(v *models.PaymentVerification) bool {
		return v.PaymentID == "pi_1" && v.Status == models.PaymentStatusRefunded
	})).Return(nil)

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedRequest(t, payload))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWebhookUnknownTypeAcked(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	store := mocks.NewVerificationStore(t)
	confirmer := mocks.NewBookingConfirmer(t)

	payload := []byte(`{"id": "evt_x", "type": "customer.created", "data": {"object": {}}}`)

	handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, signedRequest(t, payload))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"received":true}`, rr.Body.String())
}

func TestWebhookBypassHeaderOnlyWhenAllowed(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	payload := []byte(`{"id": "evt_b", "type": "customer.created", "data": {"object": {}}}`)

	t.Run("allowed", func(t *testing.T) {
		store := mocks.NewVerificationStore(t)
		confirmer := mocks.NewBookingConfirmer(t)
		handler := New(logger, Config{WebhookSecret: testSecret, AllowUnsigned: true}, store, confirmer, logbus.NewNop())

		req, err := http.NewRequest(http.MethodPost, "/api/webhook/", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set(BypassHeader, "1")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not allowed", func(t *testing.T) {
		store := mocks.NewVerificationStore(t)
		confirmer := mocks.NewBookingConfirmer(t)
		handler := New(logger, Config{WebhookSecret: testSecret}, store, confirmer, logbus.NewNop())

		req, err := http.NewRequest(http.MethodPost, "/api/webhook/", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set(BypassHeader, "1")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
