package model

import (
	"time"

	"github.com/google/uuid"
)

// GuestListEntry records an approved class. Entries are insert-only.
type GuestListEntry struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	ClassRequestID uuid.UUID `json:"class_request_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	CreatedAt      time.Time `json:"created_at"`
}
