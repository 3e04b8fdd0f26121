package refresher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vora-labs/voradash/internal/datasource"
	"github.com/vora-labs/voradash/internal/models"
	"github.com/vora-labs/voradash/internal/normalizer"
	"github.com/vora-labs/voradash/internal/scoring"
)

// Refresher periodically runs the fetch → normalize → score pipeline and
// holds the latest ranked collection behind an RWMutex. A failed fetch
// keeps the previous snapshot; the collection only becomes empty when the
// source successfully returns no acceptable records.
type Refresher struct {
	cache    *datasource.CachedSource
	norm     *normalizer.Normalizer
	engine   *scoring.Engine
	interval time.Duration

	mu     sync.RWMutex
	ranked []models.PoolRecord

	stopCh chan struct{}
}

func New(
	cache *datasource.CachedSource,
	norm *normalizer.Normalizer,
	engine *scoring.Engine,
	interval time.Duration,
) *Refresher {
	return &Refresher{
		cache:    cache,
		norm:     norm,
		engine:   engine,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Begins the polling loop in a background goroutine.
func (r *Refresher) Start(ctx context.Context) {
	// Run once immediately so the collection isn't empty on first request
	r.refresh(ctx)

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.refresh(ctx)
			case <-ctx.Done():
				log.Info().Msg("refresher stopped")
				return
			case <-r.stopCh:
				log.Info().Msg("refresher stopped")
				return
			}
		}
	}()

	log.Info().
		Stringer("interval", r.interval).
		Msg("refresher started")
}

// Signals the background goroutine to exit cleanly.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

// Ranked returns the latest ranked collection. Callers treat it as
// read-only; filtering already produces a fresh view slice.
func (r *Refresher) Ranked() []models.PoolRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ranked
}

// Refresh drops the snapshot cache and reruns the pipeline immediately.
// Serves the explicit refresh trigger of the UI.
func (r *Refresher) Refresh(ctx context.Context) {
	r.cache.Invalidate()
	r.refresh(ctx)
}

func (r *Refresher) refresh(ctx context.Context) {
	raw, err := r.cache.FetchPools(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh failed, keeping previous snapshot")
		return
	}

	ranked := r.engine.Rank(r.norm.Normalize(raw))

	r.mu.Lock()
	r.ranked = ranked
	r.mu.Unlock()

	log.Info().
		Int("raw", len(raw)).
		Int("ranked", len(ranked)).
		Msg("pool snapshot refreshed")
}
