package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/calendar"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const maxBackoff = 30 * time.Minute

// CalendarWorker consumes calendar_events_queue and retries event creation
// for approved classes whose first attempt failed.
type CalendarWorker struct {
	creator     calendar.Creator
	rdb         redis.Cmdable
	queue       string
	maxAttempts int
	backoff     time.Duration
	pollTimeout time.Duration
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration)
	log         zerolog.Logger
}

// NewCalendarWorker creates a new CalendarWorker.
func NewCalendarWorker(creator calendar.Creator, rdb redis.Cmdable, maxAttempts int, backoff time.Duration, log zerolog.Logger) *CalendarWorker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &CalendarWorker{
		creator:     creator,
		rdb:         rdb,
		queue:       config.WorkerKey.CalendarEventsQueue,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		pollTimeout: time.Second,
		now:         time.Now,
		sleep:       sleepCtx,
		log:         log.With().Str("component", "calendar_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *CalendarWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			w.drain(drainCtx)
			cancel()
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *CalendarWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the poll timeout passes.
	result, err := w.rdb.BLPop(ctx, w.pollTimeout, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			w.sleep(ctx, time.Second)
		}
		return
	}
	if len(result) < 2 {
		return
	}

	job, ok := w.decode(result[1])
	if !ok {
		return
	}

	if wait := job.NotBefore.Sub(w.now()); wait > 0 {
		// Not due yet: back to the tail, and idle briefly so a queue of
		// future jobs does not spin.
		w.requeue(ctx, job)
		if wait > w.pollTimeout {
			wait = w.pollTimeout
		}
		w.sleep(ctx, wait)
		return
	}

	w.attempt(ctx, job)
}

// attempt creates the event once and reschedules or drops the job.
func (w *CalendarWorker) attempt(ctx context.Context, job calendar.Job) bool {
	jobLog := w.log.With().
		Str("request_id", job.ClassRequestID).
		Int("attempt", job.Attempts+1).
		Logger()

	if job.Event.ID == "" && job.ClassRequestID != "" {
		job.Event.ID = calendar.ClassEventID(job.ClassRequestID)
	}

	res, err := w.creator.CreateEvent(ctx, job.Event)
	if err == nil {
		jobLog.Info().Str("event_id", res.EventID).Msg("Calendar event created on retry")
		return true
	}
	// An earlier attempt reached the calendar even though it reported failure.
	if calendar.AlreadyExists(err) {
		jobLog.Info().Str("event_id", job.Event.ID).Msg("Calendar event already created")
		return true
	}

	job.Attempts++
	job.LastError = err.Error()

	if !calendar.Retryable(err) {
		jobLog.Error().Err(err).Msg("Calendar event failed permanently, dropping")
		return false
	}
	if job.Attempts >= w.maxAttempts {
		jobLog.Error().Err(err).Int("max_attempts", w.maxAttempts).Msg("Calendar event retries exhausted, dropping")
		return false
	}

	job.NotBefore = w.now().Add(w.backoffFor(job.Attempts))
	jobLog.Warn().Err(err).Time("not_before", job.NotBefore).Msg("Calendar event failed, rescheduled")
	w.requeue(ctx, job)
	return false
}

// backoffFor doubles the base delay per completed attempt, capped at maxBackoff.
func (w *CalendarWorker) backoffFor(attempts int) time.Duration {
	d := w.backoff
	for i := 1; i < attempts && d < maxBackoff; i++ {
		d *= 2
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func (w *CalendarWorker) decode(raw string) (calendar.Job, bool) {
	var job calendar.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error, dropping job")
		return job, false
	}
	return job, true
}

func (w *CalendarWorker) requeue(ctx context.Context, job calendar.Job) {
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if err := database.EnqueueJSON(ctx, w.rdb, w.queue, job); err != nil {
		w.log.Error().Err(err).Str("request_id", job.ClassRequestID).Msg("Requeue failed, job lost")
	}
}

// drain makes one final pass over jobs that are already due. Jobs that are
// not due, or fail again, stay queued for the next start.
func (w *CalendarWorker) drain(ctx context.Context) {
	n, err := w.rdb.LLen(ctx, w.queue).Result()
	if err != nil {
		return
	}

	created := 0
	for i := int64(0); i < n && ctx.Err() == nil; i++ {
		raw, err := w.rdb.LPop(ctx, w.queue).Result()
		if err != nil {
			break
		}
		job, ok := w.decode(raw)
		if !ok {
			continue
		}
		if job.NotBefore.After(w.now()) {
			w.requeue(ctx, job)
			continue
		}
		if w.attempt(ctx, job) {
			created++
		}
	}

	if created > 0 {
		w.log.Info().Int("count", created).Msg("Drained remaining items")
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
