package eventPayments

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/storage/billingpg"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentAggregator
type PaymentAggregator interface {
	PaymentIDsAndAmounts(ctx context.Context, eventID, organizerID string) ([]billingpg.PaymentAmount, error)
	VerifyEventPayment(ctx context.Context, eventID, organizerID string) (*billingpg.EventPaymentSummary, error)
}

// NewVerify answers whether an event has completed payments, with totals.
func NewVerify(log *slog.Logger, payments PaymentAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.eventPayments.NewVerify"

		log := log.With(slog.String("op", op))

		eventID, organizerID, ok := queryParams(w, r)
		if !ok {
			return
		}

		summary, err := payments.VerifyEventPayment(r.Context(), eventID, organizerID)
		if err != nil {
			log.Error("failed to aggregate payments", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify payments"))
			return
		}

		render.JSON(w, r, summary)
	}
}

// NewList returns the completed payment ids and amounts for an event.
func NewList(log *slog.Logger, payments PaymentAggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.eventPayments.NewList"

		log := log.With(slog.String("op", op))

		eventID, organizerID, ok := queryParams(w, r)
		if !ok {
			return
		}

		list, err := payments.PaymentIDsAndAmounts(r.Context(), eventID, organizerID)
		if err != nil {
			log.Error("failed to list payments", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list payments"))
			return
		}

		if list == nil {
			list = []billingpg.PaymentAmount{}
		}

		render.JSON(w, r, list)
	}
}

func queryParams(w http.ResponseWriter, r *http.Request) (eventID, organizerID string, ok bool) {
	eventID = r.URL.Query().Get("event_id")
	organizerID = r.URL.Query().Get("organizer_id")

	if eventID == "" || organizerID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("event_id and organizer_id are required"))
		return "", "", false
	}

	return eventID, organizerID, true
}
