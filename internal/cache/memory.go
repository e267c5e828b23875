// internal/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MemoryCache is an in-process Cache with per-entry TTL.
type MemoryCache struct {
	mu     sync.RWMutex
	store  map[string]memoryEntry
	now    func() time.Time
	logger *logrus.Entry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryCache(logger *logrus.Entry) *MemoryCache {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &MemoryCache{
		store:  make(map[string]memoryEntry),
		now:    time.Now,
		logger: logger,
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists {
		m.logger.WithField("key", key).Debug("Cache miss")
		return "", ErrCacheMiss
	}

	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.logger.WithFields(logrus.Fields{
			"key":        key,
			"expired_at": entry.expiresAt.Format(time.RFC3339),
		}).Debug("Cache entry expired")
		return "", ErrCacheMiss
	}

	m.logger.WithField("key", key).Debug("Cache hit")
	return entry.value, nil
}

// Set stores value. A non-positive ttl keeps the entry until deleted.
func (m *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.store[key] = entry

	m.logger.WithFields(logrus.Fields{
		"key":        key,
		"value_size": len(value),
		"ttl":        ttl.String(),
	}).Debug("Cache set")
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

// Purge drops expired entries.
func (m *MemoryCache) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.store {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.store, key)
			removed++
		}
	}
	return removed
}
