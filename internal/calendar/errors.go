package calendar

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrNotConfigured means no credentials were provided for the calendar API.
	ErrNotConfigured = errors.New("calendar credentials are not configured")
	// ErrInvalidEvent means the event is missing required fields or has bad times.
	ErrInvalidEvent = errors.New("invalid calendar event")
)

// UpstreamError is a failure reported by the calendar API.
type UpstreamError struct {
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("calendar api: %d %s", e.Code, e.Message)
}

// wrapAPIError converts a googleapi error into an UpstreamError.
func wrapAPIError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = http.StatusText(gErr.Code)
		}
		return &UpstreamError{Code: gErr.Code, Message: msg}
	}
	return err
}

// AlreadyExists reports whether the calendar rejected an insert because an
// event with the same id is already stored.
func AlreadyExists(err error) bool {
	var up *UpstreamError
	return errors.As(err, &up) && up.Code == http.StatusConflict
}

// HTTPStatus maps a calendar error to the status returned to API callers.
// Upstream authentication, permission and not-found errors pass through.
func HTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidEvent) {
		return http.StatusBadRequest
	}
	var up *UpstreamError
	if errors.As(err, &up) {
		switch up.Code {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return up.Code
		}
	}
	return http.StatusInternalServerError
}

// ErrorCode returns a short machine-readable code for err.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		return "INVALID_EVENT"
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	}
	var up *UpstreamError
	if errors.As(err, &up) {
		switch up.Code {
		case http.StatusUnauthorized:
			return "UNAUTHENTICATED"
		case http.StatusForbidden:
			return "PERMISSION_DENIED"
		case http.StatusNotFound:
			return "CALENDAR_NOT_FOUND"
		}
		return "UPSTREAM_ERROR"
	}
	return "INTERNAL_ERROR"
}
