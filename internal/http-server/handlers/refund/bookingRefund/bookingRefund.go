package bookingRefund

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

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
	BookingID string            `json:"booking_id" validate:"required"`
	Reason    string            `json:"reason"`
	Metadata  map[string]string `json:"metadata"`
}

type Response struct {
	Success  bool   `json:"success"`
	RefundID string `json:"refund_id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	GetBooking(ctx context.Context, bearer, bookingID string) (*models.Booking, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	GetEvent(ctx context.Context, bearer, eventID string) (*clients.EventInfo, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BillingService
type BillingService interface {
	GetIntentForBooking(ctx context.Context, bearer, bookingID string) (*clients.IntentInfo, error)
	Refund(ctx context.Context, bearer string, req clients.RefundRequest) (*clients.RefundResult, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingRefunder
type BookingRefunder interface {
	Refund(ctx context.Context, bearer, bookingID string) error
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	SendRefundConfirmation(ctx context.Context, payload clients.RefundConfirmation) error
}

// New runs the refund saga for one booking: resolve booking and event,
// resolve the payment intent, refund at the provider via Billing, then
// transition the booking to REFUNDED. A refund that succeeds at the
// provider but fails to transition is an inconsistency: it is logged at
// ERROR with the booking id as transaction id and surfaced as 500 for the
// reconciler to replay.
func New(log *slog.Logger, booking BookingGetter, events EventGetter, billing BillingService, tickets BookingRefunder, notify Notifier, bus logbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.refund.bookingRefund.New"

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

		bookingID := req.BookingID
		log = log.With(slog.String("booking_id", bookingID))

		bus.Info(r.Context(), "refund started", bookingID)

		b, err := booking.GetBooking(r.Context(), caller.Token, bookingID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				bus.Warn(r.Context(), "refund aborted: booking not found", bookingID)
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
				return
			}

			log.Error("failed to get booking", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("refund failed: booking lookup: %v", err), bookingID)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("booking service unavailable"))
			return
		}

		event, err := events.GetEvent(r.Context(), caller.Token, b.EventID)
		if err != nil {
			log.Error("failed to get event", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("refund aborted: event lookup: %v", err), bookingID)
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
			return
		}

		bus.Info(r.Context(), "resolving payment intent", bookingID)

		intent, err := billing.GetIntentForBooking(r.Context(), caller.Token, bookingID)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				bus.Warn(r.Context(), "refund aborted: no payment for booking", bookingID)
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("no payment found for booking"))
				return
			}

			log.Error("failed to resolve intent", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("refund failed: intent lookup: %v", err), bookingID)
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("billing service unavailable"))
			return
		}

		metadata := map[string]string{"booking_id": bookingID}
		for k, v := range req.Metadata {
			metadata[k] = v
		}

		bus.Info(r.Context(), fmt.Sprintf("refunding intent %s", intent.PaymentIntentID), bookingID)

		refund, err := billing.Refund(r.Context(), caller.Token, clients.RefundRequest{
			PaymentIntentID: intent.PaymentIntentID,
			Amount:          intent.Amount,
			Reason:          req.Reason,
			Metadata:        metadata,
		})
		if err != nil {
			bus.Error(r.Context(), fmt.Sprintf("refund failed at provider: %v", err), bookingID)

			var statusErr *clients.StatusError
			if errors.As(err, &statusErr) {
				log.Warn("billing rejected refund", slog.Int("status", statusErr.Status), sl.Err(err))
				render.Status(r, statusErr.Status)
				render.JSON(w, r, response.Error(statusErr.Message))
				return
			}

			log.Error("refund call failed", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("billing service unavailable"))
			return
		}

		if err = tickets.Refund(r.Context(), caller.Token, bookingID); err != nil {
			// The money has already moved. This is the one place the saga
			// cannot compensate inline; the reconciler replays it from
			// the ERROR record.
			log.Error("refund processed but booking transition failed", sl.Err(err))
			bus.Error(r.Context(), fmt.Sprintf("INCONSISTENT: refund %s processed but booking not transitioned: %v", refund.RefundID, err), bookingID)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("refund processed but booking update failed"))
			return
		}

		log.Info("booking refunded", slog.String("refund_id", refund.RefundID))
		bus.Info(r.Context(), fmt.Sprintf("refund %s completed", refund.RefundID), bookingID)

		if caller.Email != "" {
			err = notify.SendRefundConfirmation(r.Context(), clients.RefundConfirmation{
				Email:      caller.Email,
				BookingID:  bookingID,
				EventTitle: event.Title,
				Amount:     float64(refund.Amount) / 100,
				Currency:   event.Currency,
				RefundID:   refund.RefundID,
			})
			if err != nil {
				log.Warn("refund notification failed", sl.Err(err))
				bus.Warn(r.Context(), fmt.Sprintf("notification failed: %v", err), bookingID)
			}
		}

		render.JSON(w, r, Response{
			Success:  true,
			RefundID: refund.RefundID,
			Amount:   refund.Amount,
			Status:   refund.Status,
		})
	}
}
