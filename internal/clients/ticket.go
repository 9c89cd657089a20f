package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ticketflow/internal/models"
)

// Ticket talks to the Ticket-Management service, the booking state
// machine authority.
type Ticket struct {
	httpClient
}

func NewTicket(baseURL string) *Ticket {
	return &Ticket{newHTTPClient(baseURL)}
}

type CreateBookingRequest struct {
	EventID        string `json:"event_id"`
	TicketQuantity int    `json:"ticket_quantity"`
	TotalAmount    int64  `json:"total_amount"`
}

func (c *Ticket) CreateBooking(ctx context.Context, bearer string, req CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/mgmt/bookings/book", bearer, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Ticket) GetBooking(ctx context.Context, bearer, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	path := "/api/v1/mgmt/bookings/" + url.PathEscape(bookingID)
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Ticket) GetUserBookings(ctx context.Context, bearer, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	path := "/api/v1/mgmt/bookings/user/" + url.PathEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, bearer, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Ticket) Confirm(ctx context.Context, bearer, bookingID string) error {
	return c.transition(ctx, bearer, bookingID, "confirm")
}

func (c *Ticket) Cancel(ctx context.Context, bearer, bookingID string) error {
	return c.transition(ctx, bearer, bookingID, "cancel")
}

func (c *Ticket) Refund(ctx context.Context, bearer, bookingID string) error {
	return c.transition(ctx, bearer, bookingID, "refund")
}

func (c *Ticket) transition(ctx context.Context, bearer, bookingID, action string) error {
	path := fmt.Sprintf("/api/v1/mgmt/bookings/%s/%s", url.PathEscape(bookingID), action)
	return c.doJSON(ctx, http.MethodPost, path, bearer, nil, nil)
}
