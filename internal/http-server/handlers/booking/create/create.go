package create

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketflow/internal/clients"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
)

type Request struct {
	EventID        string `json:"event_id" validate:"required"`
	UserID         string `json:"user_id"`
	TicketQuantity int    `json:"ticket_quantity" validate:"required,gt=0"`
	Email          string `json:"email" validate:"omitempty,email"`
}

type Response struct {
	Status         models.BookingStatus `json:"status"`
	BookingID      string               `json:"booking_id"`
	EventID        string               `json:"event_id"`
	UserID         string               `json:"user_id"`
	TicketQuantity int                  `json:"ticket_quantity"`
	CreatedAt      time.Time            `json:"created_at"`
	Message        string               `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, bearer string, req clients.CreateBookingRequest) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(ctx context.Context, bearer, eventID string) (*clients.EventInfo, error)
}

// New creates a PENDING booking through the Ticket service. No payment
// happens here; the caller continues to checkout afterwards.
func New(log *slog.Logger, tickets BookingCreator, events EventGetter, bus logbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.create.New"

		log := log.With(slog.String("op", op))

		caller := mwauth.FromContext(r.Context())
		if caller == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("missing bearer token"))
			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		event, err := events.GetEvent(r.Context(), caller.Token, req.EventID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("events service unavailable"))
			return
		}

		totalAmount := minorUnits(event.Price) * int64(req.TicketQuantity)

		booking, err := tickets.CreateBooking(r.Context(), caller.Token, clients.CreateBookingRequest{
			EventID:        req.EventID,
			TicketQuantity: req.TicketQuantity,
			TotalAmount:    totalAmount,
		})
		if err != nil {
			var statusErr *clients.StatusError
			if errors.As(err, &statusErr) {
				log.Warn("ticket service rejected booking",
					slog.Int("status", statusErr.Status), sl.Err(err))
				render.Status(r, statusErr.Status)
				render.JSON(w, r, response.Error(statusErr.Message))
				return
			}

			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("ticket service unavailable"))
			return
		}

		log.Info("booking created",
			slog.String("booking_id", booking.BookingID),
			slog.String("event_id", booking.EventID),
		)
		bus.Info(r.Context(), fmt.Sprintf("booking created for event %s", booking.EventID), booking.BookingID)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Status:         booking.Status,
			BookingID:      booking.BookingID,
			EventID:        booking.EventID,
			UserID:         booking.UserID,
			TicketQuantity: booking.TicketQuantity,
			CreatedAt:      booking.CreatedAt,
			Message:        "booking created, continue to checkout to complete payment",
		})
	}
}

func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
