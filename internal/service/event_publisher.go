package service

import (
	"context"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisEventPublisher publishes request events on the Redis PubSub channel
// the admin live feed subscribes to.
type RedisEventPublisher struct {
	rdb redis.Cmdable
	log zerolog.Logger
}

// NewRedisEventPublisher creates a new RedisEventPublisher.
func NewRedisEventPublisher(rdb redis.Cmdable, log zerolog.Logger) *RedisEventPublisher {
	return &RedisEventPublisher{rdb: rdb, log: log.With().Str("component", "event_publisher").Logger()}
}

// Publish sends e. Failures are logged and dropped.
func (p *RedisEventPublisher) Publish(ctx context.Context, e model.RequestEvent) {
	if p == nil || p.rdb == nil {
		return
	}
	if err := database.PublishJSON(ctx, p.rdb, config.CacheKey.RequestEventsChannel(), e); err != nil {
		p.log.Warn().Err(err).
			Str("type", string(e.Type)).
			Str("request_id", e.RequestID.String()).
			Msg("Failed to publish request event")
	}
}
