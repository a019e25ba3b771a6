package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asytuyf/genesis-vault/internal/models"
)

type fakeSource struct {
	events []models.ActivityEvent
	err    error
}

func (f *fakeSource) UserEvents(_ context.Context, _ string) ([]models.ActivityEvent, error) {
	return f.events, f.err
}

type fakeCacheStore struct {
	cache   models.EventCache
	saveErr error
	getErr  error
}

func (f *fakeCacheStore) GetEventCache() (models.EventCache, error) {
	return f.cache, f.getErr
}

func (f *fakeCacheStore) SaveEventCache(cache models.EventCache) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.cache = cache
	return nil
}

func TestSyncBucketsAndPersists(t *testing.T) {
	source := &fakeSource{events: []models.ActivityEvent{
		{CreatedAt: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC), Kind: "PushEvent"},
		{CreatedAt: time.Date(2026, 3, 13, 17, 0, 0, 0, time.UTC), Kind: "PushEvent"},
		{CreatedAt: time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC), Kind: "IssuesEvent"},
	}}
	store := &fakeCacheStore{}

	cache := NewSyncer(source, store).Sync(context.Background(), "asytuyf")

	if len(cache.Events) != 3 {
		t.Fatalf("cached %d events, want 3", len(cache.Events))
	}
	if cache.ByDay["2026-03-13"] != 2 || cache.ByDay["2026-03-12"] != 1 {
		t.Errorf("ByDay = %v", cache.ByDay)
	}
	if store.cache.Source != "asytuyf" {
		t.Errorf("persisted source = %q, want asytuyf", store.cache.Source)
	}
}

func TestSyncFailSoft(t *testing.T) {
	// Pre-populate the cache, then fail the fetch: the cache must be
	// reset to empty, not left stale and not partially populated.
	store := &fakeCacheStore{cache: models.EventCache{
		Source: "asytuyf",
		Events: []models.ActivityEvent{{Kind: "PushEvent"}},
		ByDay:  map[string]int{"2026-03-12": 1},
	}}
	source := &fakeSource{err: errors.New("connection refused")}

	cache := NewSyncer(source, store).Sync(context.Background(), "asytuyf")

	if len(cache.Events) != 0 {
		t.Errorf("cache events = %d, want 0 after failed sync", len(cache.Events))
	}
	if len(cache.ByDay) != 0 {
		t.Errorf("cache ByDay = %v, want empty", cache.ByDay)
	}
	if len(store.cache.Events) != 0 {
		t.Errorf("persisted cache not reset: %+v", store.cache)
	}
}

func TestSyncSurvivesPersistFailure(t *testing.T) {
	source := &fakeSource{events: []models.ActivityEvent{
		{CreatedAt: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC), Kind: "PushEvent"},
	}}
	store := &fakeCacheStore{saveErr: errors.New("quota exceeded")}

	cache := NewSyncer(source, store).Sync(context.Background(), "asytuyf")

	// Memory is authoritative even when the write fails.
	if len(cache.Events) != 1 {
		t.Errorf("cache events = %d, want 1", len(cache.Events))
	}
}

func TestCached(t *testing.T) {
	t.Run("returns stored cache", func(t *testing.T) {
		store := &fakeCacheStore{cache: models.EventCache{
			Source: "asytuyf",
			ByDay:  map[string]int{"2026-03-13": 2},
		}}
		cache := NewSyncer(&fakeSource{}, store).Cached()
		if cache.ByDay["2026-03-13"] != 2 {
			t.Errorf("ByDay = %v", cache.ByDay)
		}
	})

	t.Run("store failure reads as empty", func(t *testing.T) {
		store := &fakeCacheStore{getErr: errors.New("corrupt")}
		cache := NewSyncer(&fakeSource{}, store).Cached()
		if len(cache.Events) != 0 || len(cache.ByDay) != 0 {
			t.Errorf("cache = %+v, want empty", cache)
		}
	})
}
