package transition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/ticketpg"
)

// actions maps the URL action segment onto the target status. The state
// machine itself decides whether the transition is legal.
var actions = map[string]models.BookingStatus{
	"confirm": models.StatusConfirmed,
	"cancel":  models.StatusCanceled,
	"refund":  models.StatusRefunded,
}

type Response struct {
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingTransitioner
type BookingTransitioner interface {
	Transition(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error)
}

func New(log *slog.Logger, bookings BookingTransitioner, bus logbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.transition.New"

		log := log.With(slog.String("op", op))

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		action := chi.URLParam(r, "action")
		to, ok := actions[action]
		if !ok {
			log.Error("unknown action", slog.String("action", action))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown action"))
			return
		}

		log = log.With(
			slog.String("booking_id", bookingID),
			slog.String("action", action),
		)

		booking, err := bookings.Transition(r.Context(), bookingID, to)
		if err != nil {
			switch {
			case errors.Is(err, ticketpg.ErrBookingNotFound):
				log.Warn("booking not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, ticketpg.ErrInvalidTransition):
				log.Warn("invalid status transition", sl.Err(err))
				bus.Warn(r.Context(), fmt.Sprintf("rejected %s: %v", action, err), bookingID)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("invalid status transition"))
			default:
				log.Error("failed to transition booking", sl.Err(err))
				bus.Error(r.Context(), fmt.Sprintf("transition %s failed: %v", action, err), bookingID)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update booking"))
			}
			return
		}

		log.Info("booking transitioned", slog.String("status", string(booking.Status)))
		bus.Info(r.Context(), fmt.Sprintf("booking transitioned to %s", booking.Status), bookingID)

		render.JSON(w, r, Response{
			Message: fmt.Sprintf("booking %s is now %s", booking.BookingID, booking.Status),
		})
	}
}
