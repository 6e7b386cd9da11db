package config

import (
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Fatalf("empty input: expected nil, got %v", got)
	}

	got := parseOrigins(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENFORCE_CREDIT_FLOOR", "")
	t.Setenv("CALENDAR_MAX_ATTEMPTS", "")
	t.Setenv("CALENDAR_TIME_ZONE", "")

	cfg := Load()
	if cfg.EnforceCreditFloor {
		t.Error("credit floor should be off by default")
	}
	if cfg.CalendarMaxAttempts != 5 {
		t.Errorf("expected 5 calendar attempts, got %d", cfg.CalendarMaxAttempts)
	}
	if cfg.CalendarTimeZone != "Asia/Kolkata" {
		t.Errorf("unexpected default time zone %q", cfg.CalendarTimeZone)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENFORCE_CREDIT_FLOOR", "true")
	t.Setenv("CALENDAR_RETRY_BACKOFF_SECONDS", "2")
	t.Setenv("MAX_DB_CONNS", "not-a-number")

	cfg := Load()
	if !cfg.EnforceCreditFloor {
		t.Error("expected credit floor to be enforced")
	}
	if cfg.CalendarRetryBackoff != 2*time.Second {
		t.Errorf("expected 2s backoff, got %s", cfg.CalendarRetryBackoff)
	}
	if cfg.MaxDBConns != 16 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.MaxDBConns)
	}
}
