// Package calendar creates one-hour calendar events for approved classes.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the local wall-clock format sent alongside a time zone.
const DateTimeLayout = "2006-01-02T15:04:05"

// DefaultDuration is the length of a class event.
const DefaultDuration = 60 * time.Minute

// Event is a calendar entry to create. Start and End are wall-clock times in
// DateTimeLayout interpreted in TimeZone.
type Event struct {
	// ID, when set, is used as the upstream event id so a repeated insert
	// is rejected instead of duplicated.
	ID          string `json:"id,omitempty"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"startDateTime"`
	End         string `json:"endDateTime"`
	TimeZone    string `json:"timeZone"`
}

// Result identifies a created event.
type Result struct {
	EventID   string `json:"eventId"`
	EventLink string `json:"eventLink"`
}

// Creator is the external calendar collaborator.
type Creator interface {
	CreateEvent(ctx context.Context, e Event) (*Result, error)
}

// ClassEventID derives the event id for a class request. Google accepts ids
// drawn from base32hex (0-9, a-v) of 5 to 1024 characters; hex digits are a
// subset of that alphabet.
func ClassEventID(classRequestID string) string {
	return "class" + strings.ToLower(strings.ReplaceAll(classRequestID, "-", ""))
}

// NewClassEvent builds the event for a class booked on date (YYYY-MM-DD) at
// clock (HH:MM). The event ends one hour after it starts.
func NewClassEvent(summary, description, date, clock, tz string) (Event, error) {
	start, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(date)+" "+strings.TrimSpace(clock))
	if err != nil {
		return Event{}, fmt.Errorf("%w: class date %q time %q", ErrInvalidEvent, date, clock)
	}
	return Event{
		Summary:     summary,
		Description: description,
		Start:       start.Format(DateTimeLayout),
		End:         start.Add(DefaultDuration).Format(DateTimeLayout),
		TimeZone:    tz,
	}, nil
}

// Normalize validates e and fills the defaults: End is Start plus one hour and
// TimeZone falls back to defaultTZ. Start and End accept ISO 8601 local times
// with minute, second or fractional precision, or RFC 3339 with an offset.
// Both are rewritten to DateTimeLayout, or RFC 3339 when an offset was given.
func (e Event) Normalize(defaultTZ string) (Event, error) {
	e.Summary = strings.TrimSpace(e.Summary)
	e.Start = strings.TrimSpace(e.Start)
	e.End = strings.TrimSpace(e.End)

	if e.Summary == "" || e.Start == "" {
		return e, fmt.Errorf("%w: summary and startDateTime are required", ErrInvalidEvent)
	}

	start, zoned, err := parseDateTime(e.Start)
	if err != nil {
		return e, fmt.Errorf("%w: startDateTime %q", ErrInvalidEvent, e.Start)
	}
	end := start.Add(DefaultDuration)
	endZoned := zoned
	if e.End != "" {
		end, endZoned, err = parseDateTime(e.End)
		if err != nil {
			return e, fmt.Errorf("%w: endDateTime %q", ErrInvalidEvent, e.End)
		}
		if !end.After(start) {
			return e, fmt.Errorf("%w: endDateTime must be after startDateTime", ErrInvalidEvent)
		}
	}
	e.Start = formatDateTime(start, zoned)
	e.End = formatDateTime(end, endZoned)

	if strings.TrimSpace(e.TimeZone) == "" {
		e.TimeZone = defaultTZ
	}
	return e, nil
}

// localLayouts are tried in order for values without an offset.
var localLayouts = []string{
	"2006-01-02T15:04",
	DateTimeLayout,
	"2006-01-02T15:04:05.999999999",
}

// parseDateTime reports whether s carried its own offset.
func parseDateTime(s string) (time.Time, bool, error) {
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

func formatDateTime(t time.Time, zoned bool) string {
	if zoned {
		return t.Format(time.RFC3339)
	}
	return t.Format(DateTimeLayout)
}
