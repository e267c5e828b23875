// internal/cache/cache.go
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is the key/value contract the catalog service caches through.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = redis.Nil
