package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding the active token JTI of a user.
func (r *CacheKeyStruct) UserSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("login:%s", userID)
}

// NoticesKey returns the cache key for the public notice list.
func (r *CacheKeyStruct) NoticesKey() string {
	return "content:notices"
}

// ConcertsKey returns the cache key for the public upcoming concert list.
func (r *CacheKeyStruct) ConcertsKey() string {
	return "content:concerts"
}

// RequestEventsChannel returns the Redis PubSub channel carrying request lifecycle events.
func (r *CacheKeyStruct) RequestEventsChannel() string {
	return "requests:events"
}

var CacheKey = NewCacheKeyStruct()
