package book

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/ticketpg"
)

type BookingRequest struct {
	EventID        string `json:"event_id" validate:"required"`
	TicketQuantity int    `json:"ticket_quantity" validate:"required,gt=0"`
	TotalAmount    int64  `json:"total_amount"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, userID, eventID string, quantity, capacity int) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CapacityGetter
type CapacityGetter interface {
	GetCapacity(ctx context.Context, bearer, eventID string) int
}

func New(log *slog.Logger, bookings BookingCreator, events CapacityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.book.New"

		log := log.With(slog.String("op", op))

		caller := mwauth.FromContext(r.Context())
		if caller == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("missing bearer token"))
			return
		}

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		// Capacity 0 means the Events service reported none or was
		// unreachable; the preflight is skipped in that case.
		capacity := events.GetCapacity(r.Context(), caller.Token, req.EventID)

		booking, err := bookings.CreateBooking(r.Context(), caller.UserID, req.EventID, req.TicketQuantity, capacity)
		if err != nil {
			if errors.Is(err, ticketpg.ErrNotEnoughTickets) {
				log.Warn("not enough tickets", slog.String("event_id", req.EventID))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("not enough tickets available"))
				return
			}

			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))
			return
		}

		log.Info("booking created",
			slog.String("booking_id", booking.BookingID),
			slog.String("user_id", booking.UserID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, booking)
	}
}
