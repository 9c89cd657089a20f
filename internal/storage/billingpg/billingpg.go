package billingpg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"ticketflow/internal/config"
	"ticketflow/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Postgres) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	db.SetMaxOpenConns(dbCfg.MaxConns)

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// UpsertBookingPayment is keyed on (booking_id, payment_intent_id) so
// webhook replays never create duplicates.
func (s *Storage) UpsertBookingPayment(ctx context.Context, bp *models.BookingPayment) error {
	query := `
		INSERT INTO booking_payments
			(booking_id, payment_intent_id, amount, currency, status, customer_email, customer_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (booking_id, payment_intent_id) DO UPDATE
		SET amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			status = EXCLUDED.status,
			customer_email = EXCLUDED.customer_email,
			customer_name = EXCLUDED.customer_name,
			updated_at = NOW()`

	_, err := s.DB.ExecContext(ctx, query,
		bp.BookingID,
		bp.PaymentIntentID,
		bp.Amount,
		bp.Currency,
		bp.Status,
		bp.CustomerEmail,
		bp.CustomerName,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert booking payment: %w", err)
	}

	return nil
}

func (s *Storage) GetBookingPayment(ctx context.Context, bookingID string) (*models.BookingPayment, error) {
	query := `
		SELECT booking_id, payment_intent_id, amount, currency, status, customer_email, customer_name, created_at, updated_at
		FROM booking_payments
		WHERE booking_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`

	var bp models.BookingPayment
	err := s.DB.QueryRowContext(ctx, query, bookingID).Scan(
		&bp.BookingID,
		&bp.PaymentIntentID,
		&bp.Amount,
		&bp.Currency,
		&bp.Status,
		&bp.CustomerEmail,
		&bp.CustomerName,
		&bp.CreatedAt,
		&bp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get booking payment: %w", err)
	}

	return &bp, nil
}

// InsertVerification appends one audit row. The store is append-only:
// replays produce additional rows and readers order by created_at DESC.
func (s *Storage) InsertVerification(ctx context.Context, v *models.PaymentVerification) error {
	query := `
		INSERT INTO payment_verifications
			(payment_id, provider_event_id, event_id, organizer_id, user_id, event_type,
			 amount, currency, status, payment_method, receipt_email, receipt_url,
			 verification_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())`

	_, err := s.DB.ExecContext(ctx, query,
		v.PaymentID,
		v.ProviderEventID,
		v.EventID,
		v.OrganizerID,
		v.UserID,
		v.EventType,
		v.Amount,
		v.Currency,
		v.Status,
		v.PaymentMethod,
		v.ReceiptEmail,
		v.ReceiptURL,
		[]byte(v.VerificationData),
	)
	if err != nil {
		return fmt.Errorf("failed to insert verification: %w", err)
	}

	return nil
}

// HasVerification reports whether this provider event was already
// processed; it gates side effects (confirm fan-out, notifications), not
// the append itself.
func (s *Storage) HasVerification(ctx context.Context, paymentID, eventType, providerEventID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM payment_verifications
			WHERE payment_id = $1 AND event_type = $2 AND provider_event_id = $3
		)`

	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, paymentID, eventType, providerEventID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check verification: %w", err)
	}

	return exists, nil
}

// LatestVerificationForBooking resolves the payment intent for a booking
// from the newest verification row referencing it.
func (s *Storage) LatestVerificationForBooking(ctx context.Context, bookingID string) (*models.PaymentVerification, error) {
	query := `
		SELECT v.id, v.payment_id, v.provider_event_id, v.event_id, v.organizer_id, v.user_id,
			   v.event_type, v.amount, v.currency, v.status, v.payment_method,
			   v.receipt_email, v.receipt_url, v.verification_data, v.created_at
		FROM payment_verifications v
		WHERE v.verification_data->'data'->'object'->'metadata'->>'booking_id' = $1
		ORDER BY v.created_at DESC
		LIMIT 1`

	var v models.PaymentVerification
	err := s.DB.QueryRowContext(ctx, query, bookingID).Scan(
		&v.ID,
		&v.PaymentID,
		&v.ProviderEventID,
		&v.EventID,
		&v.OrganizerID,
		&v.UserID,
		&v.EventType,
		&v.Amount,
		&v.Currency,
		&v.Status,
		&v.PaymentMethod,
		&v.ReceiptEmail,
		&v.ReceiptURL,
		&v.VerificationData,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get latest verification: %w", err)
	}

	return &v, nil
}

// completedStatuses are the provider statuses that denote money received.
var completedStatuses = []string{"paid", "succeeded", "complete"}

type PaymentAmount struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

func (s *Storage) PaymentIDsAndAmounts(ctx context.Context, eventID, organizerID string) ([]PaymentAmount, error) {
	query := `
		SELECT DISTINCT ON (payment_id) payment_id, amount, currency
		FROM payment_verifications
		WHERE event_id = $1 AND organizer_id = $2 AND status = ANY($3)
		ORDER BY payment_id, created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, eventID, organizerID, pq.Array(completedStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []PaymentAmount
	for rows.Next() {
		var p PaymentAmount
		if err = rows.Scan(&p.PaymentID, &p.Amount, &p.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}

type EventPaymentSummary struct {
	IsPaid            bool      `json:"is_paid"`
	TotalPaid         int64     `json:"total_paid"`
	VerificationCount int       `json:"verification_count"`
	LatestPayment     time.Time `json:"latest_payment"`
}

func (s *Storage) VerifyEventPayment(ctx context.Context, eventID, organizerID string) (*EventPaymentSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(MAX(created_at), 'epoch'::timestamptz)
		FROM payment_verifications
		WHERE event_id = $1 AND organizer_id = $2 AND status = ANY($3)`

	var summary EventPaymentSummary
	err := s.DB.QueryRowContext(ctx, query, eventID, organizerID, pq.Array(completedStatuses)).Scan(
		&summary.VerificationCount,
		&summary.TotalPaid,
		&summary.LatestPayment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	summary.IsPaid = summary.VerificationCount > 0
	return &summary, nil
}
