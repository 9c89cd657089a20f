package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook event kinds the platform reacts to. Anything else is
// acknowledged and ignored so the provider stops redelivering.
const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventIntentSucceeded      = "payment_intent.succeeded"
	EventIntentPaymentFailed  = "payment_intent.payment_failed"
	EventIntentCanceled       = "payment_intent.canceled"
	EventChargeRefunded       = "charge.refunded"
	EventChargeDisputeCreated = "charge.dispute.created"
)

const SignatureTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
)

// Event is the provider's webhook envelope. Data.Object stays raw until a
// handler asks for the kind it expects.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

func ParseEvent(payload []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("parse webhook event: %w", err)
	}
	return &ev, nil
}

func (e *Event) CheckoutSession() (*CheckoutSession, error) {
	var s CheckoutSession
	if err := json.Unmarshal(e.Data.Object, &s); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	return &s, nil
}

func (e *Event) PaymentIntent() (*PaymentIntent, error) {
	var pi PaymentIntent
	if err := json.Unmarshal(e.Data.Object, &pi); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	return &pi, nil
}

func (e *Event) Charge() (*Charge, error) {
	var ch Charge
	if err := json.Unmarshal(e.Data.Object, &ch); err != nil {
		return nil, fmt.Errorf("decode charge: %w", err)
	}
	return &ch, nil
}

// VerifySignature checks the provider's `t=<unix>,v1=<hex>` header: the
// v1 value must be an HMAC-SHA256 of "<t>.<payload>" under the webhook
// secret, and t must be within tolerance of now.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	var (
		ts   int64
		sigs []string
	)

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			v, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			ts = v
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}

	if ts == 0 || len(sigs) == 0 {
		return ErrInvalidSignature
	}

	diff := now.Sub(time.Unix(ts, 0))
	if diff > SignatureTolerance || diff < -SignatureTolerance {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range sigs {
		got, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}

	return ErrInvalidSignature
}

// SignPayload produces a valid signature header, used by tests and the
// synthetic webhook replayer.
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)

	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}
