package available

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
)

type Response struct {
	AvailableTickets int `json:"available_tickets"`
	TotalCapacity    int `json:"total_capacity"`
	BookedTickets    int `json:"booked_tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookedCounter
type BookedCounter interface {
	CountBookedTickets(ctx context.Context, eventID string) (int, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CapacityGetter
type CapacityGetter interface {
	GetCapacity(ctx context.Context, bearer, eventID string) int
}

// New reports availability against the event capacity. Capacity 0 means
// "no preflight": availability is reported as 0 and createBooking will
// not reject on quantity.
func New(log *slog.Logger, tickets BookedCounter, events CapacityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.available.New"

		log := log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "event_id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		var bearer string
		if caller := mwauth.FromContext(r.Context()); caller != nil {
			bearer = caller.Token
		}

		booked, err := tickets.CountBookedTickets(r.Context(), eventID)
		if err != nil {
			log.Error("failed to count booked tickets", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get availability"))
			return
		}

		capacity := events.GetCapacity(r.Context(), bearer, eventID)

		available := 0
		if capacity > 0 {
			available = capacity - booked
			if available < 0 {
				available = 0
			}
		}

		render.JSON(w, r, Response{
			AvailableTickets: available,
			TotalCapacity:    capacity,
			BookedTickets:    booked,
		})
	}
}
