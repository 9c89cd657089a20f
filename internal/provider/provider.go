package provider

import (
	"context"
	"errors"
	"fmt"
)

// PaymentProvider is the capability handed to handlers at startup; it is
// the only way any service talks to the external payment system.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentProvider
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
	GetCharge(ctx context.Context, id string) (*Charge, error)
	CreateRefund(ctx context.Context, params RefundParams) (*Refund, error)
}

var (
	ErrAlreadyRefunded = errors.New("charge already refunded")
	ErrNotRefundable   = errors.New("charge is not refundable")
)

// APIError is a non-2xx answer from the provider.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider error (%d %s): %s", e.Status, e.Code, e.Message)
}

type CreateSessionParams struct {
	BookingID     string
	Amount        int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type RefundParams struct {
	PaymentIntentID string
	// Amount 0 refunds the full charge.
	Amount   int64
	Reason   string
	Metadata map[string]string
}

type CheckoutSession struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentIntentID string `json:"payment_intent"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
	PaymentStatus   string `json:"payment_status"`
	CustomerEmail   string `json:"customer_email"`
	CustomerDetails struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"customer_details"`
	Metadata map[string]string `json:"metadata"`
}

type PaymentIntent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	LatestCharge string            `json:"latest_charge"`
	ReceiptEmail string            `json:"receipt_email"`
	Metadata     map[string]string `json:"metadata"`
}

type Charge struct {
	ID                   string            `json:"id"`
	Amount               int64             `json:"amount"`
	AmountRefunded       int64             `json:"amount_refunded"`
	Currency             string            `json:"currency"`
	Status               string            `json:"status"`
	Refunded             bool              `json:"refunded"`
	PaymentIntentID      string            `json:"payment_intent"`
	ReceiptEmail         string            `json:"receipt_email"`
	ReceiptURL           string            `json:"receipt_url"`
	Metadata             map[string]string `json:"metadata"`
	PaymentMethodDetails struct {
		Type string `json:"type"`
	} `json:"payment_method_details"`
}

type Refund struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	ChargeID string `json:"charge"`
}
