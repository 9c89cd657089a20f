package clients

import (
	"context"
	"net/http"
	"net/url"
)

// Billing talks to the Billing gateway.
type Billing struct {
	httpClient
}

func NewBilling(baseURL string) *Billing {
	return &Billing{newHTTPClient(baseURL)}
}

type IntentInfo struct {
	Success         bool   `json:"success"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
}

func (c *Billing) GetIntentForBooking(ctx context.Context, bearer, bookingID string) (*IntentInfo, error) {
	var info IntentInfo
	path := "/api/payments/intent/" + url.PathEscape(bookingID)
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

type StoreIntentRequest struct {
	BookingID       string `json:"booking_id"`
	PaymentIntentID string `json:"payment_intent_id"`
	SessionID       string `json:"session_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	CustomerEmail   string `json:"customer_email"`
}

func (c *Billing) StoreIntentBooking(ctx context.Context, bearer string, req StoreIntentRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/payments/store-intent-booking", bearer, req, nil)
}

type RefundRequest struct {
	PaymentIntentID string            `json:"payment_intent_id"`
	Amount          int64             `json:"amount,omitempty"`
	Reason          string            `json:"reason,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

type RefundResult struct {
	Success  bool   `json:"success"`
	RefundID string `json:"refund_id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
}

func (c *Billing) Refund(ctx context.Context, bearer string, req RefundRequest) (*RefundResult, error) {
	var result RefundResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/refund/process", bearer, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
