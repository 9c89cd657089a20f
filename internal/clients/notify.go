package clients

import (
	"context"
	"net/http"
)

// Notify posts typed payloads to the external transactional-email
// endpoint. Callers treat failures as best-effort: log and move on.
type Notify struct {
	httpClient
}

func NewNotify(baseURL string) *Notify {
	return &Notify{newHTTPClient(baseURL)}
}

type BookingConfirmation struct {
	Type           string  `json:"type"`
	Email          string  `json:"email"`
	BookingID      string  `json:"booking_id"`
	EventTitle     string  `json:"event_title"`
	TicketQuantity int     `json:"ticket_quantity"`
	TotalAmount    float64 `json:"total_amount"`
	Currency       string  `json:"currency"`
}

func (c *Notify) SendBookingConfirmation(ctx context.Context, payload BookingConfirmation) error {
	payload.Type = "booking_confirmation"
	return c.doJSON(ctx, http.MethodPost, "/api/v1/notifications/email", "", payload, nil)
}

type RefundConfirmation struct {
	Type       string  `json:"type"`
	Email      string  `json:"email"`
	BookingID  string  `json:"booking_id"`
	EventTitle string  `json:"event_title"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	RefundID   string  `json:"refund_id"`
}

func (c *Notify) SendRefundConfirmation(ctx context.Context, payload RefundConfirmation) error {
	payload.Type = "refund_confirmation"
	return c.doJSON(ctx, http.MethodPost, "/api/v1/notifications/email", "", payload, nil)
}
