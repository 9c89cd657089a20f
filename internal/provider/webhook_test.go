package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_test"

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()

	header := SignPayload(payload, webhookSecret, now)

	assert.NoError(t, VerifySignature(payload, header, webhookSecret, now))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	header := SignPayload(payload, "whsec_other", now)

	assert.ErrorIs(t, VerifySignature(payload, header, webhookSecret, now), ErrInvalidSignature)
}

func TestVerifySignatureTamperedPayload(t *testing.T) {
	t.Parallel()

	now := time.Now()
	header := SignPayload([]byte(`{"amount":2000}`), webhookSecret, now)

	assert.ErrorIs(t, VerifySignature([]byte(`{"amount":9000}`), header, webhookSecret, now), ErrInvalidSignature)
}

func TestVerifySignatureStaleTimestamp(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"id":"evt_1"}`)
	signedAt := time.Now().Add(-SignatureTolerance - time.Minute)

	header := SignPayload(payload, webhookSecret, signedAt)

	assert.ErrorIs(t, VerifySignature(payload, header, webhookSecret, time.Now()), ErrStaleTimestamp)
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	t.Parallel()

	payload := []byte(`{}`)

	for _, header := range []string{"", "t=abc,v1=00", "v1=deadbeef", "t=123"} {
		assert.Error(t, VerifySignature(payload, header, webhookSecret, time.Now()), header)
	}
}

func TestParseEventCheckoutSession(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"id": "evt_123",
		"type": "checkout.session.completed",
		"created": 1712000000,
		"data": {"object": {
			"id": "cs_X",
			"payment_intent": "pi_X",
			"amount_total": 2000,
			"currency": "sgd",
			"payment_status": "paid",
			"metadata": {"booking_id": "B1", "event_id": "E1"}
		}}
	}`)

	ev, err := ParseEvent(payload)
	require.NoError(t, err)

	assert.Equal(t, "evt_123", ev.ID)
	assert.Equal(t, EventCheckoutCompleted, ev.Type)

	session, err := ev.CheckoutSession()
	require.NoError(t, err)

	assert.Equal(t, "cs_X", session.ID)
	assert.Equal(t, "pi_X", session.PaymentIntentID)
	assert.Equal(t, int64(2000), session.AmountTotal)
	assert.Equal(t, "B1", session.Metadata["booking_id"])
}

func TestParseEventGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseEvent([]byte("not json"))
	assert.Error(t, err)
}
