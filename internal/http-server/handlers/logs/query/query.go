package query

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/logpg"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=LogQuerier
type LogQuerier interface {
	QueryLogs(ctx context.Context, f logpg.Filter) ([]models.LogRecord, error)
}

type notFoundResponse struct {
	Message string `json:"message"`
}

// NewGetAll returns every stored log record, newest first.
func NewGetAll(log *slog.Logger, querier LogQuerier) http.HandlerFunc {
	return handler(log, "handlers.logs.query.NewGetAll", querier, func(r *http.Request) (logpg.Filter, bool) {
		return logpg.Filter{}, true
	})
}

// NewByTransactionLevel filters by transaction id and level.
func NewByTransactionLevel(log *slog.Logger, querier LogQuerier) http.HandlerFunc {
	return handler(log, "handlers.logs.query.NewByTransactionLevel", querier, func(r *http.Request) (logpg.Filter, bool) {
		return logpg.Filter{
			TransactionID: chi.URLParam(r, "tid"),
			Level:         chi.URLParam(r, "level"),
		}, true
	})
}

// NewByDateLevel filters by a single day and level.
func NewByDateLevel(log *slog.Logger, querier LogQuerier) http.HandlerFunc {
	return handler(log, "handlers.logs.query.NewByDateLevel", querier, func(r *http.Request) (logpg.Filter, bool) {
		date, ok := parseDate(chi.URLParam(r, "date"))
		if !ok {
			return logpg.Filter{}, false
		}
		return logpg.Filter{
			Date:  &date,
			Level: chi.URLParam(r, "level"),
		}, true
	})
}

// NewByServiceLevel filters by service name and level.
func NewByServiceLevel(log *slog.Logger, querier LogQuerier) http.HandlerFunc {
	return handler(log, "handlers.logs.query.NewByServiceLevel", querier, func(r *http.Request) (logpg.Filter, bool) {
		return logpg.Filter{
			Service: chi.URLParam(r, "service"),
			Level:   chi.URLParam(r, "level"),
		}, true
	})
}

// NewByDateRangeLevel filters by an inclusive date range and level.
func NewByDateRangeLevel(log *slog.Logger, querier LogQuerier) http.HandlerFunc {
	return handler(log, "handlers.logs.query.NewByDateRangeLevel", querier, func(r *http.Request) (logpg.Filter, bool) {
		from, okFrom := parseDate(chi.URLParam(r, "start"))
		to, okTo := parseDate(chi.URLParam(r, "end"))
		if !okFrom || !okTo {
			return logpg.Filter{}, false
		}
		return logpg.Filter{
			DateFrom: &from,
			DateTo:   &to,
			Level:    chi.URLParam(r, "level"),
		}, true
	})
}

// NewByServiceLevelDateRange filters by service, level and an inclusive date range.
func NewByServiceLevelDateRange(log *slog.Logger, querier LogQuerier) http.HandlerFunc {
	return handler(log, "handlers.logs.query.NewByServiceLevelDateRange", querier, func(r *http.Request) (logpg.Filter, bool) {
		from, okFrom := parseDate(chi.URLParam(r, "start"))
		to, okTo := parseDate(chi.URLParam(r, "end"))
		if !okFrom || !okTo {
			return logpg.Filter{}, false
		}
		return logpg.Filter{
			Service:  chi.URLParam(r, "service"),
			Level:    chi.URLParam(r, "level"),
			DateFrom: &from,
			DateTo:   &to,
		}, true
	})
}

func handler(log *slog.Logger, op string, querier LogQuerier, filter func(r *http.Request) (logpg.Filter, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(slog.String("op", op))

		f, ok := filter(r)
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date, expected YYYY-MM-DD"))
			return
		}

		records, err := querier.QueryLogs(r.Context(), f)
		if err != nil {
			log.Error("failed to query logs", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to query logs"))
			return
		}

		if len(records) == 0 {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, notFoundResponse{Message: "No logs found"})
			return
		}

		log.Info("logs fetched", slog.Int("count", len(records)))

		render.JSON(w, r, records)
	}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
