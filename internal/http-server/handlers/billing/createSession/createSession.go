package createSession

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/provider"
)

type Request struct {
	BookingID     string `json:"booking_id" validate:"required"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	SuccessURL    string `json:"success_url" validate:"required,url"`
	CancelURL     string `json:"cancel_url" validate:"required,url"`
}

type Response struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionCreator
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params provider.CreateSessionParams) (*provider.CheckoutSession, error)
}

type Limits struct {
	// Currencies is the configured supported set, lowercase.
	Currencies []string
	// MinAmount is the smallest chargeable amount in minor units.
	MinAmount int64
}

func (l Limits) currencySupported(currency string) bool {
	for _, c := range l.Currencies {
		if strings.EqualFold(c, currency) {
			return true
		}
	}
	return false
}

func New(log *slog.Logger, payments SessionCreator, limits Limits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.createSession.New"

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

		if !limits.currencySupported(req.Currency) {
			log.Warn("unsupported currency", slog.String("currency", req.Currency))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unsupported currency"))
			return
		}

		if req.Amount < limits.MinAmount {
			log.Warn("amount below minimum", slog.Int64("amount", req.Amount))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("amount below minimum"))
			return
		}

		session, err := payments.CreateCheckoutSession(r.Context(), provider.CreateSessionParams{
			BookingID:     req.BookingID,
			Amount:        req.Amount,
			Currency:      strings.ToLower(req.Currency),
			CustomerEmail: req.CustomerEmail,
			SuccessURL:    req.SuccessURL,
			CancelURL:     req.CancelURL,
		})
		if err != nil {
			var apiErr *provider.APIError
			if errors.As(err, &apiErr) {
				log.Error("provider rejected session", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("payment provider rejected the request"))
				return
			}

			log.Error("failed to create checkout session", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("payment provider unavailable"))
			return
		}

		log.Info("checkout session created",
			slog.String("booking_id", req.BookingID),
			slog.String("session_id", session.ID),
		)

		render.JSON(w, r, Response{
			URL:       session.URL,
			SessionID: session.ID,
		})
	}
}
