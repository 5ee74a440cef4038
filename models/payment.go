package models

import (
	"time"
)

// Payment rows are append-only: the API never updates or deletes them.
type Payment struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	JobID         uint    `gorm:"not null;index" json:"job_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Method        string  `gorm:"size:16;default:'cash'" json:"method"`
	ReceiptNumber string  `gorm:"size:36;uniqueIndex" json:"receipt_number"`

	// RequestID is an optional client-supplied idempotency key. A retried
	// submit with the same key returns the already-recorded row.
	RequestID *string `gorm:"size:64;uniqueIndex" json:"request_id,omitempty"`

	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
