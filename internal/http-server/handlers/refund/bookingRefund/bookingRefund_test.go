package bookingRefund

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/clients"
	"ticketflow/internal/http-server/handlers/refund/bookingRefund/mocks"
	"ticketflow/internal/http-server/middleware/mwauth"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/logbus"
	"ticketflow/internal/models"
)

type sagaMocks struct {
	booking *mocks.BookingGetter
	events  *mocks.EventGetter
	billing *mocks.BillingService
	tickets *mocks.BookingRefunder
	notify  *mocks.Notifier
}

func newSagaMocks(t *testing.T) sagaMocks {
	return sagaMocks{
		booking: mocks.NewBookingGetter(t),
		events:  mocks.NewEventGetter(t),
		billing: mocks.NewBillingService(t),
		tickets: mocks.NewBookingRefunder(t),
		notify:  mocks.NewNotifier(t),
	}
}

func refundCaller(email string) *mwauth.Caller {
	c := &mwauth.Caller{Token: "token"}
	c.UserID = "user-1"
	c.Email = email
	return c
}

func doRefund(t *testing.T, m sagaMocks, caller *mwauth.Caller, body string) *httptest.ResponseRecorder {
	t.Helper()

	logger := slogdiscard.NewDiscardLogger()
	handler := New(logger, m.booking, m.events, m.billing, m.tickets, m.notify, logbus.NewNop())

	req, err := http.NewRequest(http.MethodPost, "/api/booking-refund", bytes.NewBufferString(body))
	require.NoError(t, err)

	if caller != nil {
		req = req.WithContext(mwauth.WithTestCaller(req.Context(), caller))
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func setupHappyPath(m sagaMocks) {
	m.booking.On("GetBooking", mock.Anything, "token", "b-1").
		Return(&models.Booking{BookingID: "b-1", UserID: "user-1", EventID: "evt-1", Status: models.StatusConfirmed, TicketQuantity: 2}, nil)
	m.events.On("GetEvent", mock.Anything, "token", "evt-1").
		Return(&clients.EventInfo{EventID: "evt-1", Title: "Gig", Currency: "sgd", Price: 25.0}, nil)
	m.billing.On("GetIntentForBooking", mock.Anything, "token", "b-1").
		Return(&clients.IntentInfo{PaymentIntentID: "pi_1", Amount: 5000, Status: "paid"}, nil)
}

func TestRefundSagaSuccess(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)
	setupHappyPath(m)

	m.billing.On("Refund", mock.Anything, "token", mock.MatchedBy(func(req clients.RefundRequest) bool {
		return req.PaymentIntentID == "pi_1" &&
			req.Amount == 5000 &&
			req.Metadata["booking_id"] == "b-1"
	})).Return(&clients.RefundResult{Success: true, RefundID: "re_1", Amount: 5000, Status: "succeeded"}, nil)
	m.tickets.On("Refund", mock.Anything, "token", "b-1").Return(nil)
	m.notify.On("SendRefundConfirmation", mock.Anything, mock.MatchedBy(func(p clients.RefundConfirmation) bool {
		return p.BookingID == "b-1" && p.RefundID == "re_1" && p.Email == "u@example.com"
	})).Return(nil)

	rr := doRefund(t, m, refundCaller("u@example.com"), `{"booking_id": "b-1", "reason": "requested_by_customer"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"refund_id":"re_1","amount":5000,"status":"succeeded"}`, rr.Body.String())
}

func TestRefundSagaMissingBookingID(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)

	rr := doRefund(t, m, refundCaller(""), `{}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "BookingID")
}

func TestRefundSagaNoBearer(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)

	rr := doRefund(t, m, nil, `{"booking_id": "b-1"}`)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRefundSagaBookingNotFound(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)

	m.booking.On("GetBooking", mock.Anything, "token", "missing").
		Return(nil, clients.ErrNotFound)

	rr := doRefund(t, m, refundCaller(""), `{"booking_id": "missing"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "booking not found")
}

func TestRefundSagaNoPayment(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)

	m.booking.On("GetBooking", mock.Anything, "token", "b-1").
		Return(&models.Booking{BookingID: "b-1", UserID: "user-1", EventID: "evt-1"}, nil)
	m.events.On("GetEvent", mock.Anything, "token", "evt-1").
		Return(&clients.EventInfo{EventID: "evt-1"}, nil)
	m.billing.On("GetIntentForBooking", mock.Anything, "token", "b-1").
		Return(nil, clients.ErrNotFound)

	rr := doRefund(t, m, refundCaller(""), `{"booking_id": "b-1"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no payment found")
}

func TestRefundSagaBillingConflictPassthrough(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)
	setupHappyPath(m)

	m.billing.On("Refund", mock.Anything, "token", mock.Anything).
		Return(nil, &clients.StatusError{Status: http.StatusConflict, Message: "charge already refunded"})

	rr := doRefund(t, m, refundCaller(""), `{"booking_id": "b-1"}`)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already refunded")
}

func TestRefundSagaInconsistentWhenTransitionFails(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)
	setupHappyPath(m)

	// The provider refund went through; failing to flip the booking is an
	// inconsistency surfaced as 500, never a silent success.
	m.billing.On("Refund", mock.Anything, "token", mock.Anything).
		Return(&clients.RefundResult{Success: true, RefundID: "re_1", Amount: 5000, Status: "succeeded"}, nil)
	m.tickets.On("Refund", mock.Anything, "token", "b-1").
		Return(errors.New("ticket service unavailable"))

	rr := doRefund(t, m, refundCaller(""), `{"booking_id": "b-1"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "refund processed but booking update failed")
}

func TestRefundSagaNotificationFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	m := newSagaMocks(t)
	setupHappyPath(m)

	m.billing.On("Refund", mock.Anything, "token", mock.Anything).
		Return(&clients.RefundResult{Success: true, RefundID: "re_1", Amount: 5000, Status: "succeeded"}, nil)
	m.tickets.On("Refund", mock.Anything, "token", "b-1").Return(nil)
	m.notify.On("SendRefundConfirmation", mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	rr := doRefund(t, m, refundCaller("u@example.com"), `{"booking_id": "b-1"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"refund_id":"re_1"`)
}
