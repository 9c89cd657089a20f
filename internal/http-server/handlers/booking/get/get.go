package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/clients"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	GetBooking(ctx context.Context, bearer, bookingID string) (*models.Booking, error)
}

// New proxies a booking read through the Ticket service. Reads are not
// ownership-checked; ownership is enforced at mutation time.
func New(log *slog.Logger, tickets BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.get.New"

		log := log.With(slog.String("op", op))

		caller := mwauth.FromContext(r.Context())
		if caller == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("missing bearer token"))
			return
		}

		bookingID := chi.URLParam(r, "booking_id")
		if bookingID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		booking, err := tickets.GetBooking(r.Context(), caller.Token, bookingID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to get booking", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("ticket service unavailable"))
			return
		}

		render.JSON(w, r, booking)
	}
}
