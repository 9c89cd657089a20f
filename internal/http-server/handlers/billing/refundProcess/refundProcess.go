package refundProcess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/provider"
)

type Request struct {
	PaymentIntentID string            `json:"payment_intent_id" validate:"required"`
	Amount          int64             `json:"amount" validate:"omitempty,gt=0"`
	Reason          string            `json:"reason"`
	Metadata        map[string]string `json:"metadata"`
}

type Response struct {
	Success  bool   `json:"success"`
	RefundID string `json:"refund_id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Refunder
type Refunder interface {
	GetPaymentIntent(ctx context.Context, id string) (*provider.PaymentIntent, error)
	GetCharge(ctx context.Context, id string) (*provider.Charge, error)
	CreateRefund(ctx context.Context, params provider.RefundParams) (*provider.Refund, error)
}

// New executes a refund at the provider: resolve the intent, check its
// latest charge is refundable, then create the refund.
func New(log *slog.Logger, payments Refunder, bus logbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.refundProcess.New"

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

		log = log.With(slog.String("payment_intent_id", req.PaymentIntentID))

		transactionID := req.Metadata["booking_id"]

		refund, err := execute(r.Context(), payments, req)
		if err != nil {
			bus.Error(r.Context(), fmt.Sprintf("refund of %s failed: %v", req.PaymentIntentID, err), transactionID)

			switch {
			case errors.Is(err, provider.ErrAlreadyRefunded):
				log.Warn("charge already refunded")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("charge already refunded"))
			case errors.Is(err, provider.ErrNotRefundable):
				log.Warn("charge not refundable", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("charge is not refundable"))
			default:
				var apiErr *provider.APIError
				if errors.As(err, &apiErr) {
					log.Error("provider refused refund", sl.Err(err))
					render.Status(r, providerStatus(apiErr))
					render.JSON(w, r, response.Error("payment provider refused the refund"))
					return
				}

				log.Error("refund failed", sl.Err(err))
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("payment provider unavailable"))
			}
			return
		}

		log.Info("refund processed",
			slog.String("refund_id", refund.ID),
			slog.Int64("amount", refund.Amount),
		)
		bus.Info(r.Context(), fmt.Sprintf("refund %s processed for intent %s", refund.ID, req.PaymentIntentID), transactionID)

		render.JSON(w, r, Response{
			Success:  true,
			RefundID: refund.ID,
			Amount:   refund.Amount,
			Status:   refund.Status,
		})
	}
}

func execute(ctx context.Context, payments Refunder, req Request) (*provider.Refund, error) {
	pi, err := payments.GetPaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("resolve intent: %w", err)
	}

	if pi.LatestCharge == "" {
		return nil, provider.ErrNotRefundable
	}

	charge, err := payments.GetCharge(ctx, pi.LatestCharge)
	if err != nil {
		return nil, fmt.Errorf("resolve charge: %w", err)
	}

	if charge.Refunded {
		return nil, provider.ErrAlreadyRefunded
	}
	if charge.Status != "succeeded" {
		return nil, fmt.Errorf("%w: charge status %s", provider.ErrNotRefundable, charge.Status)
	}

	return payments.CreateRefund(ctx, provider.RefundParams{
		PaymentIntentID: req.PaymentIntentID,
		Amount:          req.Amount,
		Reason:          req.Reason,
		Metadata:        req.Metadata,
	})
}

// providerStatus maps a provider HTTP status onto what we surface; 5xx
// from the provider is not the caller's fault.
func providerStatus(apiErr *provider.APIError) int {
	if apiErr.Status >= 400 && apiErr.Status < 500 {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
