package confirm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/clients"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
)

type Response struct {
	Status    models.BookingStatus `json:"status"`
	BookingID string               `json:"booking_id"`
	Message   string               `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketService
type TicketService interface {
	GetBooking(ctx context.Context, bearer, bookingID string) (*models.Booking, error)
	Confirm(ctx context.Context, bearer, bookingID string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BillingService
type BillingService interface {
	GetIntentForBooking(ctx context.Context, bearer, bookingID string) (*clients.IntentInfo, error)
	StoreIntentBooking(ctx context.Context, bearer string, req clients.StoreIntentRequest) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(ctx context.Context, bearer, eventID string) (*clients.EventInfo, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, payload clients.BookingConfirmation) error
}

// New finalizes a booking after checkout: resolve the verified intent at
// Billing, store it against the booking with the authoritative amount,
// flip the booking to CONFIRMED, then notify the customer best-effort.
//
// Ownership is enforced against the caller identity; internal service
// callers (the webhook fan-out path) bypass it.
func New(log *slog.Logger, tickets TicketService, billing BillingService, events EventGetter, notify Notifier, bus logbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.confirm.New"

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

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("session_id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))
		bus.Info(r.Context(), "booking confirmation started", bookingID)

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

		if !caller.IsService && booking.UserID != caller.UserID {
			log.Warn("confirm denied: caller does not own booking",
				slog.String("caller", caller.UserID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("not allowed to confirm this booking"))
			return
		}

		event, err := events.GetEvent(r.Context(), caller.Token, booking.EventID)
		if err != nil {
			log.Error("failed to get event", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("confirm failed: event lookup: %v", err), bookingID)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("events service unavailable"))
			return
		}

		intent, err := billing.GetIntentForBooking(r.Context(), caller.Token, bookingID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				log.Warn("no verified payment for booking")
				bus.Warn(r.Context(), "confirm rejected: payment not verified yet", bookingID)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("payment not verified yet"))
				return
			}

			log.Error("failed to resolve intent", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("confirm failed: intent lookup: %v", err), bookingID)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("billing service unavailable"))
			return
		}

		// The amount stored against the booking is recomputed from the
		// event price, not taken from the client.
		amount := minorUnits(event.Price) * int64(booking.TicketQuantity)

		err = billing.StoreIntentBooking(r.Context(), caller.Token, clients.StoreIntentRequest{
			BookingID:       bookingID,
			PaymentIntentID: intent.PaymentIntentID,
			SessionID:       sessionID,
			Amount:          amount,
			Currency:        event.Currency,
			CustomerEmail:   caller.Email,
		})
		if err != nil {
			log.Error("failed to store intent", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("confirm failed: store intent: %v", err), bookingID)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("billing service unavailable"))
			return
		}

		if err = tickets.Confirm(r.Context(), caller.Token, bookingID); err != nil {
			var statusErr *clients.StatusError
			if errors.As(err, &statusErr) && statusErr.Status == http.StatusConflict {
				log.Warn("booking not confirmable", sl.Err(err))
				bus.Warn(r.Context(), "confirm rejected by state machine", bookingID)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking cannot be confirmed"))
				return
			}

			log.Error("failed to confirm booking", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("confirm failed: ticket transition: %v", err), bookingID)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to confirm booking"))
			return
		}

		log.Info("booking confirmed")
		bus.Info(r.Context(), "booking confirmed", bookingID)

		if caller.Email != "" {
			err = notify.SendBookingConfirmation(r.Context(), clients.BookingConfirmation{
				Email:          caller.Email,
				BookingID:      bookingID,
				EventTitle:     event.Title,
				TicketQuantity: booking.TicketQuantity,
				TotalAmount:    float64(amount) / 100,
				Currency:       event.Currency,
			})
			if err != nil {
				log.Warn("confirmation notification failed", sl.Err(err))
				bus.Warn(r.Context(), fmt.Sprintf("notification failed: %v", err), bookingID)
			}
		}

		render.JSON(w, r, Response{
			Status:    models.StatusConfirmed,
			BookingID: bookingID,
			Message:   "booking confirmed",
		})
	}
}

func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
