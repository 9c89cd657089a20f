package models

import "time"

type LogRecord struct {
	ID            int64     `json:"id,omitempty"`
	ServiceName   string    `json:"service_name"`
	Level         string    `json:"level"`
	Message       string    `json:"message"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Timestamp     time.Time `json:"timestamp,omitempty"`
}
