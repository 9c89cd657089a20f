package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCanceled  BookingStatus = "CANCELED"
	StatusRefunded  BookingStatus = "REFUNDED"
)

// transitions holds every legal booking status change. CANCELED and
// REFUNDED are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusRefunded, StatusCanceled},
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusRefunded:
		return true
	}
	return false
}

type Booking struct {
	BookingID      string        `json:"booking_id"`
	UserID         string        `json:"user_id"`
	EventID        string        `json:"event_id"`
	Status         BookingStatus `json:"status"`
	TicketQuantity int           `json:"ticket_quantity"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type Ticket struct {
	TicketID  string    `json:"ticket_id"`
	BookingID string    `json:"booking_id"`
	CreatedAt time.Time `json:"created_at"`
}
