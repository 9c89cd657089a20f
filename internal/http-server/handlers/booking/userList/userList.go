package userList

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserBookingsGetter
type UserBookingsGetter interface {
	GetUserBookings(ctx context.Context, bearer, userID string) ([]models.Booking, error)
}

func New(log *slog.Logger, tickets UserBookingsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.userList.New"

		log := log.With(slog.String("op", op))

		caller := mwauth.FromContext(r.Context())
		if caller == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("missing bearer token"))
			return
		}

		userID := chi.URLParam(r, "user_id")
		if userID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("user id is required"))
			return
		}

		if !caller.IsService && caller.UserID != userID {
			log.Warn("cross-user booking list denied",
				slog.String("caller", caller.UserID),
				slog.String("requested", userID),
			)
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("not allowed to list bookings of another user"))
			return
		}

		list, err := tickets.GetUserBookings(r.Context(), caller.Token, userID)
		if err != nil {
			log.Error("failed to get user bookings", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("ticket service unavailable"))
			return
		}

		if list == nil {
			list = []models.Booking{}
		}

		render.JSON(w, r, list)
	}
}
