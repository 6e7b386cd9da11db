package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedisClient creates and validates a Redis client connection.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return rdb, nil
}

// EnqueueJSON marshals v and appends it to the Redis list used as a work queue.
func EnqueueJSON(ctx context.Context, rdb redis.Cmdable, queue string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", queue, err)
	}
	return rdb.RPush(ctx, queue, payload).Err()
}

// PublishJSON marshals v and publishes it on a Redis PubSub channel.
func PublishJSON(ctx context.Context, rdb redis.Cmdable, channel string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", channel, err)
	}
	return rdb.Publish(ctx, channel, payload).Err()
}
