package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus values are stored verbatim and are part of the wire contract.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDeclined RequestStatus = "declined"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// ClassRequest is a student's request to book one class.
type ClassRequest struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	UserName   string        `json:"user_name,omitempty"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	ResolvedAt *time.Time    `json:"resolved_at,omitempty"`
}

// CreditRequest is a student's request to add prepaid classes to their balance.
type CreditRequest struct {
	ID            uuid.UUID     `json:"id"`
	UserID        uuid.UUID     `json:"user_id"`
	UserName      string        `json:"user_name,omitempty"`
	Amount        int           `json:"amount"`
	ProofMessage  string        `json:"proof_message"`
	PaymentMethod string        `json:"payment_method"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ResolvedAt    *time.Time    `json:"resolved_at,omitempty"`
}

// DefaultPaymentMethod is recorded when a credit request names none.
const DefaultPaymentMethod = "manual"

// SubmitClassRequest is the payload for booking a class.
// Date is YYYY-MM-DD and Time is HH:MM (24h).
type SubmitClassRequest struct {
	Date string `json:"date" binding:"required,isodate"`
	Time string `json:"time" binding:"required,clocktime"`
}

// SubmitCreditRequest is the payload for buying credits.
type SubmitCreditRequest struct {
	Amount        int    `json:"amount" binding:"required,gt=0,lte=100"`
	ProofMessage  string `json:"proof_message" binding:"required,max=1000"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,max=50"`
}

// RequestEventType names a lifecycle transition broadcast to admin views.
type RequestEventType string

const (
	EventRequestCreated  RequestEventType = "created"
	EventRequestApproved RequestEventType = "approved"
	EventRequestDeclined RequestEventType = "declined"
)

// RequestEvent is published after a request is created or resolved.
type RequestEvent struct {
	Type       RequestEventType `json:"type"`
	Collection Collection       `json:"collection"`
	RequestID  uuid.UUID        `json:"request_id"`
	UserID     uuid.UUID        `json:"user_id"`
	Status     RequestStatus    `json:"status"`
	Balance    *int             `json:"balance,omitempty"`
	At         time.Time        `json:"at"`
}

// RequestFilter narrows request listings. Zero values match everything.
type RequestFilter struct {
	UserID *uuid.UUID
	Status RequestStatus
}
