package logpg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"ticketflow/internal/config"
	"ticketflow/internal/models"
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

func (s *Storage) InsertLog(ctx context.Context, rec *models.LogRecord) error {
	query := `
		INSERT INTO logs (service_name, level, message, transaction_id, timestamp)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW())`

	_, err := s.DB.ExecContext(ctx, query, rec.ServiceName, rec.Level, rec.Message, rec.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}

	return nil
}

// Filter narrows log queries; zero-value fields are not applied. Level and
// service comparisons are case-insensitive; dates compare against
// date(timestamp).
type Filter struct {
	TransactionID string
	Level         string
	Service       string
	Date          *time.Time
	DateFrom      *time.Time
	DateTo        *time.Time
}

func (s *Storage) QueryLogs(ctx context.Context, f Filter) ([]models.LogRecord, error) {
	var (
		conds []string
		args  []interface{}
	)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.TransactionID != "" {
		add("transaction_id = $%d", f.TransactionID)
	}
	if f.Level != "" {
		add("LOWER(level) = LOWER($%d)", f.Level)
	}
	if f.Service != "" {
		add("LOWER(service_name) = LOWER($%d)", f.Service)
	}
	if f.Date != nil {
		add("date(timestamp) = $%d", *f.Date)
	}
	if f.DateFrom != nil {
		add("date(timestamp) >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("date(timestamp) <= $%d", *f.DateTo)
	}

	query := `
		SELECT id, service_name, level, COALESCE(message, ''), COALESCE(transaction_id, ''), timestamp
		FROM logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var records []models.LogRecord
	for rows.Next() {
		var rec models.LogRecord
		err = rows.Scan(&rec.ID, &rec.ServiceName, &rec.Level, &rec.Message, &rec.TransactionID, &rec.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating logs: %w", err)
	}

	return records, nil
}
