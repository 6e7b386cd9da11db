package service

import "errors"

// Request lifecycle errors.
var (
	ErrRequestNotFound        = errors.New("request not found")
	ErrRequestAlreadyResolved = errors.New("request already resolved")
	ErrUserNotFound           = errors.New("user not found")
	ErrInsufficientCredits    = errors.New("insufficient credits")
	ErrTransactionConflict    = errors.New("concurrent write conflict, retry")
	ErrForbidden              = errors.New("actor is not allowed to perform this action")
)

// Input and content errors.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrEmailTaken  = errors.New("email already registered")
	ErrNotOnRoster = errors.New("email not found in registration form responses")
	ErrInUse       = errors.New("record is referenced by guest list entries")
)

// ValidationError carries field-level messages for an ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
