package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/calendar"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CalendarService creates calendar events for approved classes and for
// administrators directly. Failed class events are queued for the retry worker.
type CalendarService struct {
	creator  calendar.Creator
	rdb      redis.Cmdable
	timeZone string
	backoff  time.Duration
	log      zerolog.Logger
}

// NewCalendarService creates a new CalendarService. With a nil rdb failed
// class events are reported but not retried.
func NewCalendarService(creator calendar.Creator, rdb redis.Cmdable, timeZone string, backoff time.Duration, log zerolog.Logger) *CalendarService {
	return &CalendarService{
		creator:  creator,
		rdb:      rdb,
		timeZone: timeZone,
		backoff:  backoff,
		log:      log.With().Str("component", "calendar_service").Logger(),
	}
}

// CreateEvent validates e, fills its defaults and creates it.
func (s *CalendarService) CreateEvent(ctx context.Context, actor Actor, e calendar.Event) (*calendar.Result, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	e, err := e.Normalize(s.timeZone)
	if err != nil {
		return nil, err
	}
	// Ad hoc events get an id from the calendar.
	e.ID = ""

	res, err := s.creator.CreateEvent(ctx, e)
	if err != nil {
		s.log.Warn().Err(err).Str("summary", e.Summary).Msg("Calendar event creation failed")
		return nil, err
	}

	s.log.Info().
		Str("event_id", res.EventID).
		Str("admin_id", actor.UserID.String()).
		Msg("Calendar event created")
	return res, nil
}

// OnClassApproved creates the one-hour event for an approved class. A
// retryable failure is queued before the error is returned.
func (s *CalendarService) OnClassApproved(ctx context.Context, req *model.ClassRequest, user *model.User) error {
	ev, err := calendar.NewClassEvent(
		fmt.Sprintf("Violin class: %s", user.Name),
		fmt.Sprintf("Class with %s (%s)", user.Name, user.Email),
		req.Date, req.Time, s.timeZone,
	)
	if err != nil {
		return err
	}
	ev.ID = calendar.ClassEventID(req.ID.String())

	res, err := s.creator.CreateEvent(ctx, ev)
	if calendar.AlreadyExists(err) {
		s.log.Info().Str("request_id", req.ID.String()).Msg("Class calendar event already exists")
		return nil
	}
	if err == nil {
		s.log.Info().
			Str("request_id", req.ID.String()).
			Str("event_id", res.EventID).
			Msg("Class calendar event created")
		return nil
	}
	if !calendar.Retryable(err) || s.rdb == nil {
		return err
	}

	job := calendar.Job{
		ClassRequestID: req.ID.String(),
		Event:          ev,
		Attempts:       1,
		LastError:      err.Error(),
		NotBefore:      time.Now().Add(s.backoff),
	}
	if qErr := database.EnqueueJSON(ctx, s.rdb, config.WorkerKey.CalendarEventsQueue, job); qErr != nil {
		s.log.Error().Err(qErr).Str("request_id", req.ID.String()).Msg("Failed to queue calendar retry")
		return errors.Join(err, qErr)
	}
	return fmt.Errorf("%w (queued for retry)", err)
}
