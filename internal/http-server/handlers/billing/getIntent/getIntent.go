package getIntent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/billingpg"
)

type Response struct {
	Success         bool   `json:"success"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Status          string `json:"status"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentGetter
type PaymentGetter interface {
	GetBookingPayment(ctx context.Context, bookingID string) (*models.BookingPayment, error)
	LatestVerificationForBooking(ctx context.Context, bookingID string) (*models.PaymentVerification, error)
}

func New(log *slog.Logger, payments PaymentGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.getIntent.New"

		log := log.With(slog.String("op", op))

		bookingID := chi.URLParam(r, "booking_id")
		if bookingID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		bp, err := payments.GetBookingPayment(r.Context(), bookingID)
		if err == nil {
			render.JSON(w, r, Response{
				Success:         true,
				PaymentIntentID: bp.PaymentIntentID,
				Amount:          bp.Amount,
				Status:          bp.Status,
			})
			return
		}

		if !errors.Is(err, billingpg.ErrPaymentNotFound) {
			log.Error("failed to get booking payment", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get payment"))
			return
		}

		// The webhook can land before the orchestrator stores the intent;
		// the verification trail still knows the payment.
		v, err := payments.LatestVerificationForBooking(r.Context(), bookingID)
		if err != nil {
			if errors.Is(err, billingpg.ErrPaymentNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("no payment found for booking"))
				return
			}

			log.Error("failed to get verification", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get payment"))
			return
		}

		render.JSON(w, r, Response{
			Success:         true,
			PaymentIntentID: v.PaymentID,
			Amount:          v.Amount,
			Status:          v.Status,
		})
	}
}
