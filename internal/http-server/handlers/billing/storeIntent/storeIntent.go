package storeIntent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
)

type Request struct {
	BookingID       string `json:"booking_id" validate:"required"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	SessionID       string `json:"session_id"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	Currency        string `json:"currency" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email"`
}

type Response struct {
	Success bool                   `json:"success"`
	Data    *models.BookingPayment `json:"data"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentUpserter
type PaymentUpserter interface {
	UpsertBookingPayment(ctx context.Context, bp *models.BookingPayment) error
}

// New persists the payment intent against a booking. The orchestrator
// calls this during booking confirmation; it is idempotent under the
// (booking_id, payment_intent_id) key.
func New(log *slog.Logger, payments PaymentUpserter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.storeIntent.New"

		log := log.With(slog.String("op", op))

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

		bp := &models.BookingPayment{
			BookingID:       req.BookingID,
			PaymentIntentID: req.PaymentIntentID,
			Amount:          req.Amount,
			Currency:        req.Currency,
			Status:          models.PaymentStatusPaid,
			CustomerEmail:   req.CustomerEmail,
		}

		if err = payments.UpsertBookingPayment(r.Context(), bp); err != nil {
			log.Error("failed to store intent", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to store payment intent"))
			return
		}

		log.Info("payment intent stored",
			slog.String("booking_id", req.BookingID),
			slog.String("payment_intent_id", req.PaymentIntentID),
		)

		render.JSON(w, r, Response{Success: true, Data: bp})
	}
}
