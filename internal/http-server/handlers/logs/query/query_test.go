package query

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/http-server/handlers/logs/query/mocks"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/logpg"
)

func newLogRouter(querier LogQuerier) *chi.Mux {
	logger := slogdiscard.NewDiscardLogger()

	router := chi.NewRouter()
	router.Get("/logs/getall", NewGetAll(logger, querier))
	router.Get("/logs/by_transid_level/{tid}/{level}", NewByTransactionLevel(logger, querier))
	router.Get("/logs/by_date_level/{date}/{level}", NewByDateLevel(logger, querier))
	router.Get("/logs/by_service_level/{service}/{level}", NewByServiceLevel(logger, querier))
	router.Get("/logs/by_date_range_level/{start}/{end}/{level}", NewByDateRangeLevel(logger, querier))
	router.Get("/logs/by_service_level_daterange/{service}/{level}/{start}/{end}", NewByServiceLevelDateRange(logger, querier))
	return router
}

func get(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetAll(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, logpg.Filter{}).
		Return([]models.LogRecord{
			{ID: 1, ServiceName: "billing", Level: "INFO", Message: "refund processed", TransactionID: "b-1"},
		}, nil)

	rr := get(t, newLogRouter(querier), "/logs/getall")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "refund processed")
}

func TestGetAllEmptyIs404(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, logpg.Filter{}).Return(nil, nil)

	rr := get(t, newLogRouter(querier), "/logs/getall")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"No logs found"}`, rr.Body.String())
}

func TestByTransactionLevel(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, logpg.Filter{TransactionID: "b-1", Level: "error"}).
		Return([]models.LogRecord{{ID: 2, ServiceName: "refund", Level: "ERROR", TransactionID: "b-1"}}, nil)

	rr := get(t, newLogRouter(querier), "/logs/by_transid_level/b-1/error")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"transaction_id":"b-1"`)
}

func TestByDateLevel(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, mock.MatchedBy(func(f logpg.Filter) bool {
		return f.Date != nil && f.Date.Equal(day) && f.Level == "info"
	})).Return([]models.LogRecord{{ID: 3, ServiceName: "booking", Level: "INFO"}}, nil)

	rr := get(t, newLogRouter(querier), "/logs/by_date_level/2025-03-15/info")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestByDateLevelMalformedDate(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)

	rr := get(t, newLogRouter(querier), "/logs/by_date_level/15-03-2025/info")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid date")
	querier.AssertNotCalled(t, "QueryLogs", mock.Anything, mock.Anything)
}

func TestByServiceLevel(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, logpg.Filter{Service: "billing", Level: "warning"}).
		Return([]models.LogRecord{{ID: 4, ServiceName: "billing", Level: "WARNING"}}, nil)

	rr := get(t, newLogRouter(querier), "/logs/by_service_level/billing/warning")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestByDateRangeLevel(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, mock.MatchedBy(func(f logpg.Filter) bool {
		return f.DateFrom != nil && f.DateTo != nil && f.Level == "error"
	})).Return([]models.LogRecord{{ID: 5, Level: "ERROR"}}, nil)

	rr := get(t, newLogRouter(querier), "/logs/by_date_range_level/2025-03-01/2025-03-31/error")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestByServiceLevelDateRange(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, mock.MatchedBy(func(f logpg.Filter) bool {
		return f.Service == "refund" && f.Level == "error" && f.DateFrom != nil && f.DateTo != nil
	})).Return([]models.LogRecord{{ID: 6, ServiceName: "refund", Level: "ERROR"}}, nil)

	rr := get(t, newLogRouter(querier), "/logs/by_service_level_daterange/refund/error/2025-03-01/2025-03-31")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestByServiceLevelDateRangeMalformedEnd(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)

	rr := get(t, newLogRouter(querier), "/logs/by_service_level_daterange/refund/error/2025-03-01/bogus")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestQueryFailureIs500(t *testing.T) {
	t.Parallel()

	querier := mocks.NewLogQuerier(t)
	querier.On("QueryLogs", mock.Anything, logpg.Filter{}).
		Return(nil, errors.New("connection reset"))

	rr := get(t, newLogRouter(querier), "/logs/getall")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
