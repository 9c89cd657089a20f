package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ticketflow/internal/models"
)

// Booking talks to the Booking orchestrator; the refund composite uses it
// to resolve bookings with the caller's own bearer.
type Booking struct {
	httpClient
}

func NewBooking(baseURL string) *Booking {
	return &Booking{newHTTPClient(baseURL)}
}

func (c *Booking) GetBooking(ctx context.Context, bearer, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	path := "/api/v1/bookings/" + url.PathEscape(bookingID)
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Booking) Confirm(ctx context.Context, bearer, bookingID, sessionID string) error {
	path := fmt.Sprintf("/api/v1/bookings/%s/confirm?session_id=%s",
		url.PathEscape(bookingID), url.QueryEscape(sessionID))
	return c.doJSON(ctx, http.MethodPost, path, bearer, nil, nil)
}

// ServiceConfirmer binds Confirm to the internal service credential; the
// billing webhook fan-out uses it so the ownership check is bypassed.
type ServiceConfirmer struct {
	Client *Booking
	Token  string
}

func (s ServiceConfirmer) Confirm(ctx context.Context, bookingID, sessionID string) error {
	return s.Client.Confirm(ctx, s.Token, bookingID, sessionID)
}
