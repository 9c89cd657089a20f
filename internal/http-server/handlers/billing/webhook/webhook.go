package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
	"ticketflow/internal/provider"
)

const (
	// SignatureHeader carries the provider's `t=..,v1=..` signature.
	SignatureHeader = "Stripe-Signature"
	// BypassHeader skips signature verification; honored only when the
	// service is explicitly configured to allow unsigned webhooks.
	BypassHeader = "X-Webhook-Bypass"

	maxBodySize = 1 << 20
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=VerificationStore
type VerificationStore interface {
	InsertVerification(ctx context.Context, v *models.PaymentVerification) error
	UpsertBookingPayment(ctx context.Context, bp *models.BookingPayment) error
	HasVerification(ctx context.Context, paymentID, eventType, providerEventID string) (bool, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingConfirmer
type BookingConfirmer interface {
	Confirm(ctx context.Context, bookingID, sessionID string) error
}

type Config struct {
	WebhookSecret string
	AllowUnsigned bool
}

// New ingests provider webhooks. After the signature checks out, the
// handler always acknowledges with 200: a downstream failure must not
// make the provider retry forever.
func New(log *slog.Logger, cfg Config, store VerificationStore, booking BookingConfirmer, bus logbus.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.billing.webhook.New"

		log := log.With(slog.String("op", op))

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
		if err != nil {
			log.Error("failed to read webhook body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to read body"))
			return
		}

		bypass := cfg.AllowUnsigned && r.Header.Get(BypassHeader) != ""
		if !bypass {
			err = provider.VerifySignature(body, r.Header.Get(SignatureHeader), cfg.WebhookSecret, time.Now())
			if err != nil {
				log.Error("webhook signature verification failed", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("signature verification failed"))
				return
			}
		}

		ev, err := provider.ParseEvent(body)
		if err != nil {
			log.Error("failed to parse webhook event", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("malformed event"))
			return
		}

		log = log.With(
			slog.String("provider_event_id", ev.ID),
			slog.String("event_type", ev.Type),
		)

		switch ev.Type {
		case provider.EventCheckoutCompleted:
			handleCheckoutCompleted(r.Context(), log, ev, body, store, booking, bus)
		case provider.EventIntentSucceeded,
			provider.EventIntentPaymentFailed,
			provider.EventIntentCanceled:
			handleIntentEvent(r.Context(), log, ev, body, store, bus)
		case provider.EventChargeRefunded,
			provider.EventChargeDisputeCreated:
			handleChargeEvent(r.Context(), log, ev, body, store, bus)
		default:
			// Unknown kinds are acknowledged so the provider stops
			// redelivering them.
			log.Info("ignoring unhandled webhook kind")
		}

		render.JSON(w, r, map[string]bool{"received": true})
	}
}

func handleCheckoutCompleted(ctx context.Context, log *slog.Logger, ev *provider.Event, body []byte, store VerificationStore, booking BookingConfirmer, bus logbus.Bus) {
	session, err := ev.CheckoutSession()
	if err != nil {
		log.Error("failed to decode session object", sl.Err(err))
		return
	}

	bookingID := session.Metadata["booking_id"]

	paymentID := session.PaymentIntentID
	if paymentID == "" {
		paymentID = session.ID
	}

	seen, err := store.HasVerification(ctx, paymentID, ev.Type, ev.ID)
	if err != nil {
		log.Error("failed to check verification", sl.Err(err))
		seen = true // do not re-trigger side effects when dedup state is unknown
	}

	email := session.CustomerEmail
	if email == "" {
		email = session.CustomerDetails.Email
	}

	verification := &models.PaymentVerification{
		PaymentID:        paymentID,
		ProviderEventID:  ev.ID,
		EventID:          session.Metadata["event_id"],
		OrganizerID:      session.Metadata["organizer_id"],
		UserID:           session.Metadata["user_id"],
		EventType:        ev.Type,
		Amount:           session.AmountTotal,
		Currency:         session.Currency,
		Status:           session.PaymentStatus,
		ReceiptEmail:     email,
		VerificationData: json.RawMessage(body),
	}

	if err = store.InsertVerification(ctx, verification); err != nil {
		log.Error("failed to persist verification", sl.Err(err))
		bus.Error(ctx, fmt.Sprintf("webhook %s: persist verification failed: %v", ev.Type, err), bookingID)
		return
	}

	if bookingID == "" || session.PaymentIntentID == "" {
		log.Warn("checkout session without booking metadata", slog.String("session_id", session.ID))
		return
	}

	err = store.UpsertBookingPayment(ctx, &models.BookingPayment{
		BookingID:       bookingID,
		PaymentIntentID: session.PaymentIntentID,
		Amount:          session.AmountTotal,
		Currency:        session.Currency,
		Status:          models.PaymentStatusPaid,
		CustomerEmail:   email,
		CustomerName:    session.CustomerDetails.Name,
	})
	if err != nil {
		log.Error("failed to upsert booking payment", sl.Err(err))
		bus.Error(ctx, fmt.Sprintf("webhook %s: upsert booking payment failed: %v", ev.Type, err), bookingID)
		return
	}

	bus.Info(ctx, fmt.Sprintf("payment recorded for session %s", session.ID), bookingID)

	if seen {
		log.Info("replayed webhook, skipping confirm fan-out")
		return
	}

	// Best-effort: the client's own confirm call is the primary path and
	// the provider will not be failed for a downstream problem.
	if err = booking.Confirm(ctx, bookingID, session.ID); err != nil {
		log.Warn("booking confirm fan-out failed", sl.Err(err))
		bus.Warn(ctx, fmt.Sprintf("confirm fan-out failed: %v", err), bookingID)
	}
}

func handleIntentEvent(ctx context.Context, log *slog.Logger, ev *provider.Event, body []byte, store VerificationStore, bus logbus.Bus) {
	pi, err := ev.PaymentIntent()
	if err != nil {
		log.Error("failed to decode intent object", sl.Err(err))
		return
	}

	bookingID := pi.Metadata["booking_id"]

	verification := &models.PaymentVerification{
		PaymentID:        pi.ID,
		ProviderEventID:  ev.ID,
		EventID:          pi.Metadata["event_id"],
		OrganizerID:      pi.Metadata["organizer_id"],
		UserID:           pi.Metadata["user_id"],
		EventType:        ev.Type,
		Amount:           pi.Amount,
		Currency:         pi.Currency,
		Status:           pi.Status,
		ReceiptEmail:     pi.ReceiptEmail,
		VerificationData: json.RawMessage(body),
	}

	if err = store.InsertVerification(ctx, verification); err != nil {
		log.Error("failed to persist verification", sl.Err(err))
		bus.Error(ctx, fmt.Sprintf("webhook %s: persist verification failed: %v", ev.Type, err), bookingID)
		return
	}

	bus.Info(ctx, fmt.Sprintf("intent %s is %s", pi.ID, pi.Status), bookingID)
}

func handleChargeEvent(ctx context.Context, log *slog.Logger, ev *provider.Event, body []byte, store VerificationStore, bus logbus.Bus) {
	ch, err := ev.Charge()
	if err != nil {
		log.Error("failed to decode charge object", sl.Err(err))
		return
	}

	bookingID := ch.Metadata["booking_id"]

	status := ch.Status
	if ev.Type == provider.EventChargeRefunded {
		status = models.PaymentStatusRefunded
	}

	verification := &models.PaymentVerification{
		PaymentID:        ch.PaymentIntentID,
		ProviderEventID:  ev.ID,
		EventID:          ch.Metadata["event_id"],
		OrganizerID:      ch.Metadata["organizer_id"],
		UserID:           ch.Metadata["user_id"],
		EventType:        ev.Type,
		Amount:           ch.Amount,
		Currency:         ch.Currency,
		Status:           status,
		PaymentMethod:    ch.PaymentMethodDetails.Type,
		ReceiptEmail:     ch.ReceiptEmail,
		ReceiptURL:       ch.ReceiptURL,
		VerificationData: json.RawMessage(body),
	}

	if err = store.InsertVerification(ctx, verification); err != nil {
		log.Error("failed to persist verification", sl.Err(err))
		bus.Error(ctx, fmt.Sprintf("webhook %s: persist verification failed: %v", ev.Type, err), bookingID)
		return
	}

	bus.Info(ctx, fmt.Sprintf("charge %s recorded as %s", ch.ID, status), bookingID)
}
