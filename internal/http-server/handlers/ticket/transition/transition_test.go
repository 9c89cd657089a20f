package transition

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/http-server/handlers/ticket/transition/mocks"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/ticketpg"
)

func TestTransitionHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		action         string
		mockSetup      func(m *mocks.BookingTransitioner)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Confirm",
			bookingID: "b-1",
			action:    "confirm",
			mockSetup: func(m *mocks.BookingTransitioner) {
				m.On("Transition", mock.Anything, "b-1", models.StatusConfirmed).
					Return(&models.Booking{BookingID: "b-1", Status: models.StatusConfirmed}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"booking b-1 is now CONFIRMED"}`,
		},
		{
			name:      "Cancel",
			bookingID: "b-2",
			action:    "cancel",
			mockSetup: func(m *mocks.BookingTransitioner) {
				m.On("Transition", mock.Anything, "b-2", models.StatusCanceled).
					Return(&models.Booking{BookingID: "b-2", Status: models.StatusCanceled}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"booking b-2 is now CANCELED"}`,
		},
		{
			name:      "Refund",
			bookingID: "b-3",
			action:    "refund",
			mockSetup: func(m *mocks.BookingTransitioner) {
				m.On("Transition", mock.Anything, "b-3", models.StatusRefunded).
					Return(&models.Booking{BookingID: "b-3", Status: models.StatusRefunded}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"booking b-3 is now REFUNDED"}`,
		},
		{
			name:           "Unknown action",
			bookingID:      "b-1",
			action:         "explode",
			mockSetup:      func(m *mocks.BookingTransitioner) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"unknown action"}`,
		},
		{
			name:      "Booking not found",
			bookingID: "missing",
			action:    "confirm",
			mockSetup: func(m *mocks.BookingTransitioner) {
				m.On("Transition", mock.Anything, "missing", models.StatusConfirmed).
					Return(nil, ticketpg.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"booking not found"}`,
		},
		{
			name:      "Invalid transition",
			bookingID: "b-1",
			action:    "refund",
			mockSetup: func(m *mocks.BookingTransitioner) {
				m.On("Transition", mock.Anything, "b-1", models.StatusRefunded).
					Return(nil, ticketpg.ErrInvalidTransition)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"invalid status transition"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockBookings := mocks.NewBookingTransitioner(t)
			tc.mockSetup(mockBookings)

			handler := New(logger, mockBookings, logbus.NewNop())

			router := chi.NewRouter()
			router.Post("/api/v1/mgmt/bookings/{id}/{action}", handler)

			req, err := http.NewRequest(http.MethodPost, "/api/v1/mgmt/bookings/"+tc.bookingID+"/"+tc.action, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
