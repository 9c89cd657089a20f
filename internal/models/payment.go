package models

import (
	"encoding/json"
	"time"
)

// BookingPayment is the last known provider-side truth for a booking,
// keyed on (booking_id, payment_intent_id) so webhook replays upsert
// instead of duplicating.
type BookingPayment struct {
	BookingID       string    `json:"booking_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerName    string    `json:"customer_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
	PaymentStatusCanceled = "canceled"
	PaymentStatusFailed   = "failed"
)

// PaymentVerification is one append-only audit row per processed webhook.
// payment_id is the intent id or the checkout session id, whichever the
// event carried. provider_event_id is the provider's own event id, kept
// separate from the business event_id.
type PaymentVerification struct {
	ID               int64           `json:"id"`
	PaymentID        string          `json:"payment_id"`
	ProviderEventID  string          `json:"provider_event_id"`
	EventID          string          `json:"event_id"`
	OrganizerID      string          `json:"organizer_id"`
	UserID           string          `json:"user_id"`
	EventType        string          `json:"event_type"`
	Amount           int64           `json:"amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"payment_method"`
	ReceiptEmail     string          `json:"receipt_email"`
	ReceiptURL       string          `json:"receipt_url"`
	VerificationData json.RawMessage `json:"verification_data"`
	CreatedAt        time.Time       `json:"created_at"`
}
