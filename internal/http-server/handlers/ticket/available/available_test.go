package available

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/http-server/handlers/ticket/available/mocks"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
)

func TestAvailableHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name         string
		booked       int
		capacity     int
		expectedBody string
	}{
		{
			name:         "Capacity known",
			booked:       30,
			capacity:     100,
			expectedBody: `{"available_tickets":70,"total_capacity":100,"booked_tickets":30}`,
		},
		{
			name:         "Overbooked clamps to zero",
			booked:       120,
			capacity:     100,
			expectedBody: `{"available_tickets":0,"total_capacity":100,"booked_tickets":120}`,
		},
		{
			name:         "Capacity unknown",
			booked:       30,
			capacity:     0,
			expectedBody: `{"available_tickets":0,"total_capacity":0,"booked_tickets":30}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockTickets := mocks.NewBookedCounter(t)
			mockEvents := mocks.NewCapacityGetter(t)

			mockTickets.On("CountBookedTickets", mock.Anything, "evt-1").Return(tc.booked, nil)
			mockEvents.On("GetCapacity", mock.Anything, "", "evt-1").Return(tc.capacity)

			handler := New(logger, mockTickets, mockEvents)

			router := chi.NewRouter()
			router.Get("/api/v1/tickets/event/{event_id}/available", handler)

			req, err := http.NewRequest(http.MethodGet, "/api/v1/tickets/event/evt-1/available", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
