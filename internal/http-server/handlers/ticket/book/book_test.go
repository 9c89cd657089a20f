package book

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/http-server/handlers/ticket/book/mocks"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/ticketpg"
)

func TestBookHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		caller         *mwauth.Caller
		mockSetup      func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			requestBody: `{"event_id": "evt-1", "ticket_quantity": 2, "total_amount": 5000}`,
			caller:      testCaller("user-1"),
			mockSetup: func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter) {
				events.On("GetCapacity", mock.Anything, "token", "evt-1").Return(100)
				bookings.On("CreateBooking", mock.Anything, "user-1", "evt-1", 2, 100).
					Return(&models.Booking{
						BookingID:      "b-1",
						UserID:         "user-1",
						EventID:        "evt-1",
						Status:         models.StatusPending,
						TicketQuantity: 2,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"booking_id":"b-1"`)
				assert.Contains(t, body, `"status":"PENDING"`)
			},
		},
		{
			name:           "No caller",
			requestBody:    `{"event_id": "evt-1", "ticket_quantity": 2}`,
			caller:         nil,
			mockSetup:      func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter) {},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "missing bearer token")
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `not json`,
			caller:         testCaller("user-1"),
			mockSetup:      func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to decode request")
			},
		},
		{
			name:           "Missing event_id",
			requestBody:    `{"ticket_quantity": 2}`,
			caller:         testCaller("user-1"),
			mockSetup:      func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "EventID")
			},
		},
		{
			name:           "Zero quantity",
			requestBody:    `{"event_id": "evt-1", "ticket_quantity": 0}`,
			caller:         testCaller("user-1"),
			mockSetup:      func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "TicketQuantity")
			},
		},
		{
			name:        "Not enough tickets",
			requestBody: `{"event_id": "evt-1", "ticket_quantity": 500}`,
			caller:      testCaller("user-1"),
			mockSetup: func(bookings *mocks.BookingCreator, events *mocks.CapacityGetter) {
				events.On("GetCapacity", mock.Anything, "token", "evt-1").Return(10)
				bookings.On("CreateBooking", mock.Anything, "user-1", "evt-1", 500, 10).
					Return(nil, ticketpg.ErrNotEnoughTickets)
			},
			expectedStatus: http.StatusConflict,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "not enough tickets available")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockBookings := mocks.NewBookingCreator(t)
			mockEvents := mocks.NewCapacityGetter(t)
			tc.mockSetup(mockBookings, mockEvents)

			handler := New(logger, mockBookings, mockEvents)

			req, err := http.NewRequest(http.MethodPost, "/api/v1/mgmt/bookings/book", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			if tc.caller != nil {
				req = req.WithContext(mwauth.WithTestCaller(req.Context(), tc.caller))
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			tc.checkBody(t, rr.Body.String())
		})
	}
}

func testCaller(userID string) *mwauth.Caller {
	c := &mwauth.Caller{Token: "token"}
	c.UserID = userID
	return c
}
