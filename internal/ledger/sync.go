package ledger

import (
	"context"
	"time"

	"github.com/asytuyf/genesis-vault/internal/logger"
	"github.com/asytuyf/genesis-vault/internal/models"
)

// EventSource fetches the external per-user activity feed.
type EventSource interface {
	UserEvents(ctx context.Context, user string) ([]models.ActivityEvent, error)
}

// CacheStore persists the synced feed for reuse without re-fetching.
type CacheStore interface {
	GetEventCache() (models.EventCache, error)
	SaveEventCache(models.EventCache) error
}

// Syncer refreshes the external event cache. The feed is decorative: a
// failed or garbled fetch resets the cache to empty instead of surfacing
// an error, and a stale cache is served as-is until the next explicit
// sync. Overlapping syncs are last-write-wins.
type Syncer struct {
	source EventSource
	store  CacheStore
	now    func() time.Time
}

// NewSyncer creates a Syncer.
func NewSyncer(source EventSource, store CacheStore) *Syncer {
	return &Syncer{source: source, store: store, now: time.Now}
}

// Sync fetches the feed for the given source identifier and replaces the
// cache wholesale. It never returns an error for feed failures; the
// returned cache is empty in that case.
func (s *Syncer) Sync(ctx context.Context, user string) models.EventCache {
	cache := models.EventCache{
		Source:   user,
		SyncedAt: s.now(),
		Events:   []models.ActivityEvent{},
		ByDay:    map[string]int{},
	}

	events, err := s.source.UserEvents(ctx, user)
	if err != nil {
		logger.Warn("Event feed sync failed, clearing cache", "user", user, "error", err)
	} else {
		cache.Events = events
		cache.ByDay = BucketEvents(events)
	}

	if s.store != nil {
		if err := s.store.SaveEventCache(cache); err != nil {
			logger.Warn("Failed to persist event cache", "error", err)
		}
	}
	return cache
}

// Cached returns the last synced cache, or an empty cache when none is
// stored or the store cannot be read.
func (s *Syncer) Cached() models.EventCache {
	if s.store == nil {
		return models.EventCache{ByDay: map[string]int{}}
	}
	cache, err := s.store.GetEventCache()
	if err != nil {
		logger.Debug("No event cache available", "error", err)
		return models.EventCache{ByDay: map[string]int{}}
	}
	if cache.ByDay == nil {
		cache.ByDay = map[string]int{}
	}
	return cache
}
