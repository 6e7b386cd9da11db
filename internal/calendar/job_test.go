package calendar

import (
	"errors"
	"fmt"
	"testing"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"invalid event", fmt.Errorf("%w: no summary", ErrInvalidEvent), false},
		{"not configured", ErrNotConfigured, false},
		{"forbidden", &UpstreamError{Code: 403, Message: "forbidden"}, false},
		{"rate limited", &UpstreamError{Code: 429, Message: "slow down"}, true},
		{"server error", &UpstreamError{Code: 503, Message: "unavailable"}, true},
		{"network", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
