package service

import (
	"context"
	"time"
)

// cacheStore is the slice of the cache repository the services need.
// Implementations must degrade gracefully when Redis is unavailable.
type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
