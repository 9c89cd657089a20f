package ticketpg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"ticketflow/internal/config"
	"ticketflow/internal/models"
)

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotEnoughTickets   = errors.New("not enough tickets available")
	ErrInvalidPostgresCfg = errors.New("invalid postgres config")
)

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

// CreateBooking inserts a PENDING booking and its tickets in one
// transaction. capacity > 0 enables the availability preflight; capacity 0
// means the Events service reported none and no preflight applies.
func (s *Storage) CreateBooking(ctx context.Context, userID, eventID string, quantity, capacity int) (*models.Booking, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if capacity > 0 {
		var booked int
		countQuery := `
			SELECT COUNT(t.ticket_id)
			FROM tickets t
			JOIN bookings b ON b.booking_id = t.booking_id
			WHERE b.event_id = $1 AND b.status = $2`

		err = tx.QueryRowContext(ctx, countQuery, eventID, models.StatusConfirmed).Scan(&booked)
		if err != nil {
			return nil, fmt.Errorf("failed to count booked tickets: %w", err)
		}

		if booked+quantity > capacity {
			return nil, ErrNotEnoughTickets
		}
	}

	booking := &models.Booking{
		BookingID:      uuid.NewString(),
		UserID:         userID,
		EventID:        eventID,
		Status:         models.StatusPending,
		TicketQuantity: quantity,
	}

	insertQuery := `
		INSERT INTO bookings (booking_id, user_id, event_id, status, ticket_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		booking.BookingID,
		booking.UserID,
		booking.EventID,
		booking.Status,
		booking.TicketQuantity,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	ticketQuery := `
		INSERT INTO tickets (ticket_id, booking_id, event_id, created_at)
		VALUES ($1, $2, $3, NOW())`

	for i := 0; i < quantity; i++ {
		if _, err = tx.ExecContext(ctx, ticketQuery, uuid.NewString(), booking.BookingID, booking.EventID); err != nil {
			return nil, fmt.Errorf("failed to create ticket: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return booking, nil
}

func (s *Storage) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	query := `
		SELECT booking_id, user_id, event_id, status, ticket_quantity, created_at, updated_at
		FROM bookings
		WHERE booking_id = $1`

	var b models.Booking
	err := s.DB.QueryRowContext(ctx, query, bookingID).Scan(
		&b.BookingID,
		&b.UserID,
		&b.EventID,
		&b.Status,
		&b.TicketQuantity,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

func (s *Storage) GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT booking_id, user_id, event_id, status, ticket_quantity, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err = rows.Scan(
			&b.BookingID,
			&b.UserID,
			&b.EventID,
			&b.Status,
			&b.TicketQuantity,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// Transition moves a booking to the requested status under a row lock.
// The current status is re-read inside the transaction so two concurrent
// transitions observe one success and one ErrInvalidTransition.
func (s *Storage) Transition(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `
		SELECT booking_id, user_id, event_id, status, ticket_quantity, created_at, updated_at
		FROM bookings
		WHERE booking_id = $1
		FOR UPDATE`

	var b models.Booking
	err = tx.QueryRowContext(ctx, lockQuery, bookingID).Scan(
		&b.BookingID,
		&b.UserID,
		&b.EventID,
		&b.Status,
		&b.TicketQuantity,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}

	if !b.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}

	updateQuery := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE booking_id = $1
		RETURNING updated_at`

	if err = tx.QueryRowContext(ctx, updateQuery, bookingID, to).Scan(&b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	b.Status = to

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	return &b, nil
}

// CountBookedTickets counts tickets belonging to CONFIRMED bookings only;
// pending bookings do not consume inventory.
func (s *Storage) CountBookedTickets(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COUNT(t.ticket_id)
		FROM tickets t
		JOIN bookings b ON b.booking_id = t.booking_id
		WHERE b.event_id = $1 AND b.status = $2`

	var booked int
	if err := s.DB.QueryRowContext(ctx, query, eventID, models.StatusConfirmed).Scan(&booked); err != nil {
		return 0, fmt.Errorf("failed to count booked tickets: %w", err)
	}

	return booked, nil
}

// CancelExpiredBookings cancels PENDING bookings older than ttl. Returns
// the number of bookings cancelled.
func (s *Storage) CancelExpiredBookings(ctx context.Context, ttlMinutes int) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE status = $2
		AND created_at < NOW() - INTERVAL '1 minute' * $3`

	result, err := s.DB.ExecContext(ctx, query, models.StatusCanceled, models.StatusPending, ttlMinutes)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel expired bookings: %w", err)
	}

	n, _ := result.RowsAffected()
	return n, nil
}
