package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NoticeStore persists notices.
type NoticeStore interface {
	List(ctx context.Context) ([]model.Notice, error)
	Create(ctx context.Context, n *model.Notice) error
	Update(ctx context.Context, id uuid.UUID, body, author string) (*model.Notice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConcertStore persists upcoming concerts.
type ConcertStore interface {
	List(ctx context.Context, upcomingOnly bool) ([]model.Concert, error)
	Create(ctx context.Context, c *model.Concert) error
	Update(ctx context.Context, c *model.Concert) (*model.Concert, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContentService manages notices and concerts. The public lists are cached
// in Redis and dropped on every write.
type ContentService struct {
	notices  NoticeStore
	concerts ConcertStore
	rdb      redis.Cmdable
	ttl      time.Duration
	log      zerolog.Logger
}

// NewContentService creates a new ContentService. A nil rdb disables caching.
func NewContentService(notices NoticeStore, concerts ConcertStore, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *ContentService {
	return &ContentService{
		notices:  notices,
		concerts: concerts,
		rdb:      rdb,
		ttl:      ttl,
		log:      log.With().Str("component", "content_service").Logger(),
	}
}

// ListNotices returns all notices, newest first.
func (s *ContentService) ListNotices(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice
	if s.cacheGet(ctx, config.CacheKey.NoticesKey(), &notices) {
		return notices, nil
	}
	notices, err := s.notices.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, config.CacheKey.NoticesKey(), notices)
	return notices, nil
}

// CreateNotice publishes a notice signed by the actor.
func (s *ContentService) CreateNotice(ctx context.Context, actor Actor, body string) (*model.Notice, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, invalid("body", "body is required")
	}

	n := &model.Notice{Body: body, Author: actor.Name}
	if err := s.notices.Create(ctx, n); err != nil {
		return nil, err
	}
	s.invalidate(ctx, config.CacheKey.NoticesKey())
	return n, nil
}

// UpdateNotice replaces a notice's body.
func (s *ContentService) UpdateNotice(ctx context.Context, actor Actor, id uuid.UUID, body string) (*model.Notice, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, invalid("body", "body is required")
	}

	n, err := s.notices.Update(ctx, id, body, actor.Name)
	if err != nil {
		return nil, mapMissing(err, ErrNotFound)
	}
	s.invalidate(ctx, config.CacheKey.NoticesKey())
	return n, nil
}

// DeleteNotice removes a notice.
func (s *ContentService) DeleteNotice(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.notices.Delete(ctx, id); err != nil {
		return mapMissing(err, ErrNotFound)
	}
	s.invalidate(ctx, config.CacheKey.NoticesKey())
	return nil
}

// ListUpcomingConcerts returns concerts from today on, soonest first.
func (s *ContentService) ListUpcomingConcerts(ctx context.Context) ([]model.Concert, error) {
	var concerts []model.Concert
	if s.cacheGet(ctx, config.CacheKey.ConcertsKey(), &concerts) {
		return concerts, nil
	}
	concerts, err := s.concerts.List(ctx, true)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, config.CacheKey.ConcertsKey(), concerts)
	return concerts, nil
}

// ListAllConcerts returns past and upcoming concerts for the admin panel.
func (s *ContentService) ListAllConcerts(ctx context.Context, actor Actor) ([]model.Concert, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.concerts.List(ctx, false)
}

// CreateConcert adds a concert signed by the actor.
func (s *ContentService) CreateConcert(ctx context.Context, actor Actor, req model.ConcertRequest) (*model.Concert, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	c := concertFromRequest(req, actor)
	if c.Title == "" {
		return nil, invalid("title", "title is required")
	}
	if err := s.concerts.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, config.CacheKey.ConcertsKey())
	return c, nil
}

// UpdateConcert replaces a concert's fields.
func (s *ContentService) UpdateConcert(ctx context.Context, actor Actor, id uuid.UUID, req model.ConcertRequest) (*model.Concert, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	c := concertFromRequest(req, actor)
	if c.Title == "" {
		return nil, invalid("title", "title is required")
	}
	c.ID = id

	updated, err := s.concerts.Update(ctx, c)
	if err != nil {
		return nil, mapMissing(err, ErrNotFound)
	}
	s.invalidate(ctx, config.CacheKey.ConcertsKey())
	return updated, nil
}

// DeleteConcert removes a concert.
func (s *ContentService) DeleteConcert(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.concerts.Delete(ctx, id); err != nil {
		return mapMissing(err, ErrNotFound)
	}
	s.invalidate(ctx, config.CacheKey.ConcertsKey())
	return nil
}

// InvalidateAll drops both cached lists. The document browser calls it after
// editing content tables directly.
func (s *ContentService) InvalidateAll(ctx context.Context) {
	s.invalidate(ctx, config.CacheKey.NoticesKey(), config.CacheKey.ConcertsKey())
}

func concertFromRequest(req model.ConcertRequest, actor Actor) *model.Concert {
	return &model.Concert{
		Title:    strings.TrimSpace(req.Title),
		Venue:    strings.TrimSpace(req.Venue),
		Location: strings.TrimSpace(req.Location),
		Date:     strings.TrimSpace(req.Date),
		Time:     strings.TrimSpace(req.Time),
		Author:   actor.Name,
	}
}

func (s *ContentService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("Content cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Discarding corrupt content cache entry")
		return false
	}
	return true
}

func (s *ContentService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Content cache write failed")
	}
}

func (s *ContentService) invalidate(ctx context.Context, keys ...string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("Content cache invalidation failed")
	}
}
