package calendar

import (
	"errors"
	"net/http"
	"time"
)

// Job is a queued calendar event creation that failed at least once.
type Job struct {
	ClassRequestID string    `json:"class_request_id"`
	Event          Event     `json:"event"`
	Attempts       int       `json:"attempts"`
	LastError      string    `json:"last_error,omitempty"`
	NotBefore      time.Time `json:"not_before"`
}

// Retryable reports whether creating the event again may succeed. Bad input,
// missing credentials and client errors other than rate limiting are final.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, ErrInvalidEvent) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	var up *UpstreamError
	if errors.As(err, &up) {
		return up.Code == http.StatusTooManyRequests || up.Code >= 500
	}
	return true
}
