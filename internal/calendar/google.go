package calendar

import (
	"context"
	"fmt"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCreator inserts events into a Google Calendar using a service account.
type GoogleCreator struct {
	events     *gcal.EventsService
	calendarID string
}

// NewGoogleCreator authenticates with the service-account credentials file.
// It returns ErrNotConfigured when credentialsFile is empty.
func NewGoogleCreator(ctx context.Context, credentialsFile, calendarID string) (*GoogleCreator, error) {
	if credentialsFile == "" {
		return nil, ErrNotConfigured
	}
	return NewGoogleCreatorWithOptions(ctx, calendarID,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
}

// NewGoogleCreatorWithOptions builds a creator from explicit client options.
func NewGoogleCreatorWithOptions(ctx context.Context, calendarID string, opts ...option.ClientOption) (*GoogleCreator, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCreator{events: svc.Events, calendarID: calendarID}, nil
}

// CreateEvent inserts e and returns the new event's id and link.
func (g *GoogleCreator) CreateEvent(ctx context.Context, e Event) (*Result, error) {
	ev := &gcal.Event{
		Id:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		Start:       &gcal.EventDateTime{DateTime: e.Start, TimeZone: e.TimeZone},
		End:         &gcal.EventDateTime{DateTime: e.End, TimeZone: e.TimeZone},
	}

	created, err := g.events.Insert(g.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return &Result{EventID: created.Id, EventLink: created.HtmlLink}, nil
}

// Unconfigured is the Creator used when no credentials are present.
type Unconfigured struct{}

// CreateEvent always fails with ErrNotConfigured.
func (Unconfigured) CreateEvent(context.Context, Event) (*Result, error) {
	return nil, ErrNotConfigured
}
