package datasource

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vora-labs/voradash/internal/models"
)

// CachedSource wraps a Source with a time-bounded snapshot cache so that
// repeated UI interactions within the TTL do not hit the network again.
// Invalidation is time-based; Invalidate exists only for the explicit
// refresh trigger.
type CachedSource struct {
	source Source
	ttl    time.Duration

	mu        sync.Mutex
	snapshot  []models.RawPoolRecord
	fetchedAt time.Time
}

func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		ttl:    ttl,
	}
}

func (c *CachedSource) FetchPools(ctx context.Context) ([]models.RawPoolRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		log.Debug().
			Time("fetched_at", c.fetchedAt).
			Msg("serving pools snapshot from cache")
		return c.snapshot, nil
	}

	pools, err := c.source.FetchPools(ctx)
	if err != nil {
		return nil, err
	}

	c.snapshot = pools
	c.fetchedAt = time.Now()
	return pools, nil
}

// Invalidate drops the cached snapshot so the next fetch goes to the source.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.fetchedAt = time.Time{}
}
