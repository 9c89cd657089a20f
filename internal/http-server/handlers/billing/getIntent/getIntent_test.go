package getIntent

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketflow/internal/http-server/handlers/billing/getIntent/mocks"
	"ticketflow/internal/lib/logger/handlers/slogdiscard"
	"ticketflow/internal/models"
	"ticketflow/internal/storage/billingpg"
)

func doGetIntent(t *testing.T, payments *mocks.PaymentGetter, bookingID string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/api/payments/intent/{booking_id}", New(slogdiscard.NewDiscardLogger(), payments))

	req, err := http.NewRequest(http.MethodGet, "/api/payments/intent/"+bookingID, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetIntentFromBookingPayment(t *testing.T) {
	t.Parallel()

	payments := mocks.NewPaymentGetter(t)
	payments.On("GetBookingPayment", mock.Anything, "b-1").
		Return(&models.BookingPayment{BookingID: "b-1", PaymentIntentID: "pi_1", Amount: 5000, Status: models.PaymentStatusPaid}, nil)

	rr := doGetIntent(t, payments, "b-1")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"payment_intent_id":"pi_1","amount":5000,"status":"paid"}`, rr.Body.String())
	payments.AssertNotCalled(t, "LatestVerificationForBooking", mock.Anything, mock.Anything)
}

func TestGetIntentFallsBackToVerification(t *testing.T) {
	t.Parallel()

	payments := mocks.NewPaymentGetter(t)
	payments.On("GetBookingPayment", mock.Anything, "b-1").
		Return(nil, billingpg.ErrPaymentNotFound)
	payments.On("LatestVerificationForBooking", mock.Anything, "b-1").
		Return(&models.PaymentVerification{PaymentID: "pi_1", Amount: 5000, Status: "paid"}, nil)

	rr := doGetIntent(t, payments, "b-1")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"payment_intent_id":"pi_1","amount":5000,"status":"paid"}`, rr.Body.String())
}

func TestGetIntentNotFound(t *testing.T) {
	t.Parallel()

	payments := mocks.NewPaymentGetter(t)
	payments.On("GetBookingPayment", mock.Anything, "b-1").
		Return(nil, billingpg.ErrPaymentNotFound)
	payments.On("LatestVerificationForBooking", mock.Anything, "b-1").
		Return(nil, billingpg.ErrPaymentNotFound)

	rr := doGetIntent(t, payments, "b-1")

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"no payment found for booking"}`, rr.Body.String())
}
