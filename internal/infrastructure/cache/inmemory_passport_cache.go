package cache

import (
	"context"
	"sync"
	"time"

	passportapp "github.com/lucamadonia/dpp-backend/internal/application/passport"
)

const cleanupInterval = 30 * time.Second

// Ensure InMemoryPassportCache implements PassportCache
var _ passportapp.PassportCache = (*InMemoryPassportCache)(nil)

// InMemoryPassportCache caches public passport views in process memory.
// It is used when Redis is disabled; entries are not shared across instances.
type InMemoryPassportCache struct {
	entries    sync.Map // map[string]*passportEntry
	defaultTTL time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
}

type passportEntry struct {
	view      *passportapp.PublicPassportResponse
	expiresAt time.Time
}

func (e *passportEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryPassportCache creates an in-memory passport cache
func NewInMemoryPassportCache(defaultTTL time.Duration) *InMemoryPassportCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}

	c := &InMemoryPassportCache{
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a cached passport view. Returns nil, nil on a cache miss.
func (c *InMemoryPassportCache) Get(_ context.Context, slug string) (*passportapp.PublicPassportResponse, error) {
	if value, ok := c.entries.Load(slug); ok {
		entry := value.(*passportEntry)
		if !entry.isExpired() {
			return entry.view, nil
		}
		c.entries.Delete(slug)
	}
	return nil, nil
}

// Set stores a passport view with the given TTL. A zero TTL uses the default.
func (c *InMemoryPassportCache) Set(_ context.Context, slug string, view *passportapp.PublicPassportResponse, ttl time.Duration) error {
	if view == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.entries.Store(slug, &passportEntry{
		view:      view,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a cached passport view
func (c *InMemoryPassportCache) Delete(_ context.Context, slug string) error {
	c.entries.Delete(slug)
	return nil
}

// Close stops the background cleanup goroutine
func (c *InMemoryPassportCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	return nil
}

func (c *InMemoryPassportCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*passportEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
