package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

// Both providers must behave identically through the Provider interface.
func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "vault.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "vault.db")),
	}
}

func TestInitAndLoad(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			if err := store.Load(); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}

			settings, err := store.GetSettings()
			if err != nil {
				t.Fatalf("GetSettings() failed: %v", err)
			}
			if settings.HeatmapDays != constants.DefaultHeatmapDays {
				t.Errorf("default heatmap days = %d, want %d", settings.HeatmapDays, constants.DefaultHeatmapDays)
			}
			if settings.Focus.WorkMinutes != constants.DefaultWorkMinutes {
				t.Errorf("default work minutes = %d, want %d", settings.Focus.WorkMinutes, constants.DefaultWorkMinutes)
			}

			habits, err := store.GetHabits()
			if err != nil {
				t.Fatalf("GetHabits() failed: %v", err)
			}
			if len(habits) != 0 {
				t.Errorf("fresh store has %d habits, want 0", len(habits))
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "missing.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "missing.db")),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			if err := store.Load(); err == nil {
				t.Error("Load() on uninitialized store should fail")
			}
		})
	}
}

func TestHabitsRoundTrip(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			habits := []models.Habit{
				{ID: "a", Name: "Read", Color: "orange", History: []string{"2026-03-01", "2026-03-02"}},
				{ID: "b", Name: "Run", Color: "emerald", History: []string{}},
			}
			if err := store.SaveHabits(habits); err != nil {
				t.Fatalf("SaveHabits() failed: %v", err)
			}

			got, err := store.GetHabits()
			if err != nil {
				t.Fatalf("GetHabits() failed: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("got %d habits, want 2", len(got))
			}
			if got[0].ID != "a" || got[1].ID != "b" {
				t.Errorf("habit order not preserved: %s, %s", got[0].ID, got[1].ID)
			}
			if len(got[0].History) != 2 {
				t.Errorf("habit a history = %v, want 2 days", got[0].History)
			}
			if len(got[1].History) != 0 {
				t.Errorf("habit b history = %v, want empty", got[1].History)
			}

			// Whole-collection replacement: dropping a habit persists.
			if err := store.SaveHabits(habits[:1]); err != nil {
				t.Fatalf("SaveHabits() failed: %v", err)
			}
			got, err = store.GetHabits()
			if err != nil {
				t.Fatalf("GetHabits() failed: %v", err)
			}
			if len(got) != 1 || got[0].ID != "a" {
				t.Errorf("after replacement got %+v, want only habit a", got)
			}
		})
	}
}

func TestSnippetCRUD(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			now := time.Now().UTC().Truncate(time.Second)
			sn := models.Snippet{
				ID:        "s1",
				Title:     "Rebuild NixOS",
				Category:  "nix",
				Content:   "```\nsudo nixos-rebuild switch\n```",
				Images:    []string{},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := store.AddSnippet(sn); err != nil {
				t.Fatalf("AddSnippet() failed: %v", err)
			}

			sn.Title = "Rebuild NixOS flake"
			if err := store.UpdateSnippet(sn); err != nil {
				t.Fatalf("UpdateSnippet() failed: %v", err)
			}

			snippets, err := store.GetSnippets()
			if err != nil {
				t.Fatalf("GetSnippets() failed: %v", err)
			}
			if len(snippets) != 1 {
				t.Fatalf("got %d snippets, want 1", len(snippets))
			}
			if snippets[0].Title != "Rebuild NixOS flake" {
				t.Errorf("title = %q, want updated title", snippets[0].Title)
			}
			if !snippets[0].UpdatedAt.After(snippets[0].CreatedAt) && !snippets[0].UpdatedAt.Equal(snippets[0].CreatedAt) {
				t.Errorf("updated_at %v before created_at %v", snippets[0].UpdatedAt, snippets[0].CreatedAt)
			}

			if err := store.DeleteSnippet("s1"); err != nil {
				t.Fatalf("DeleteSnippet() failed: %v", err)
			}
			if err := store.DeleteSnippet("s1"); err == nil {
				t.Error("deleting a missing snippet should fail")
			}
		})
	}
}

func TestGoalCRUD(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			goal := models.Goal{ID: "g1", Project: "vault", Task: "Ship v1", Priority: constants.PriorityHigh, Date: "2026-03-14"}
			if err := store.AddGoal(goal); err != nil {
				t.Fatalf("AddGoal() failed: %v", err)
			}

			goals, err := store.GetGoals()
			if err != nil {
				t.Fatalf("GetGoals() failed: %v", err)
			}
			if len(goals) != 1 || goals[0].Task != "Ship v1" {
				t.Fatalf("got %+v, want the stored goal", goals)
			}

			if err := store.DeleteGoal("g1"); err != nil {
				t.Fatalf("DeleteGoal() failed: %v", err)
			}
			if err := store.DeleteGoal("g1"); err == nil {
				t.Error("deleting a missing goal should fail")
			}
		})
	}
}

func TestWholeCollectionReplacement(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			now := time.Now().UTC().Truncate(time.Second)
			if err := store.AddSnippet(models.Snippet{ID: "old", Title: "stale", Images: []string{}, CreatedAt: now, UpdatedAt: now}); err != nil {
				t.Fatalf("AddSnippet() failed: %v", err)
			}
			if err := store.SaveSnippets([]models.Snippet{
				{ID: "new", Title: "fresh", Images: []string{}, CreatedAt: now, UpdatedAt: now},
			}); err != nil {
				t.Fatalf("SaveSnippets() failed: %v", err)
			}
			snippets, err := store.GetSnippets()
			if err != nil {
				t.Fatalf("GetSnippets() failed: %v", err)
			}
			if len(snippets) != 1 || snippets[0].ID != "new" {
				t.Errorf("SaveSnippets did not replace collection: %+v", snippets)
			}

			if err := store.AddGoal(models.Goal{ID: "old", Task: "stale", Priority: constants.PriorityNormal}); err != nil {
				t.Fatalf("AddGoal() failed: %v", err)
			}
			if err := store.SaveGoals([]models.Goal{
				{ID: "new", Task: "fresh", Priority: constants.PriorityHigh, Date: "2026-03-14"},
			}); err != nil {
				t.Fatalf("SaveGoals() failed: %v", err)
			}
			goals, err := store.GetGoals()
			if err != nil {
				t.Fatalf("GetGoals() failed: %v", err)
			}
			if len(goals) != 1 || goals[0].ID != "new" {
				t.Errorf("SaveGoals did not replace collection: %+v", goals)
			}
		})
	}
}

func TestEventCacheRoundTrip(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			// Missing cache reads as empty, not an error.
			cache, err := store.GetEventCache()
			if err != nil {
				t.Fatalf("GetEventCache() on fresh store failed: %v", err)
			}
			if len(cache.Events) != 0 {
				t.Errorf("fresh cache has %d events", len(cache.Events))
			}

			cache = models.EventCache{
				Source:   "asytuyf",
				SyncedAt: time.Now().UTC().Truncate(time.Second),
				Events: []models.ActivityEvent{
					{CreatedAt: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC), Kind: "PushEvent", Repo: "asytuyf/nixos-config"},
				},
				ByDay: map[string]int{"2026-03-13": 1},
			}
			if err := store.SaveEventCache(cache); err != nil {
				t.Fatalf("SaveEventCache() failed: %v", err)
			}

			got, err := store.GetEventCache()
			if err != nil {
				t.Fatalf("GetEventCache() failed: %v", err)
			}
			if got.Source != "asytuyf" || len(got.Events) != 1 || got.ByDay["2026-03-13"] != 1 {
				t.Errorf("cache round trip mismatch: %+v", got)
			}
		})
	}
}

func TestFocusLogRoundTrip(t *testing.T) {
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			log, err := store.GetFocusLog()
			if err != nil {
				t.Fatalf("GetFocusLog() failed: %v", err)
			}
			log.Sessions["2026-03-14"] = 3
			if err := store.SaveFocusLog(log); err != nil {
				t.Fatalf("SaveFocusLog() failed: %v", err)
			}

			got, err := store.GetFocusLog()
			if err != nil {
				t.Fatalf("GetFocusLog() failed: %v", err)
			}
			if got.SessionsOn("2026-03-14") != 3 {
				t.Errorf("sessions = %d, want 3", got.SessionsOn("2026-03-14"))
			}
		})
	}
}

func TestConcurrentWriters(t *testing.T) {
	// The event loop, the persistence outbox worker and the feed-sync
	// goroutine all write through the same provider. Run with -race.
	for name, store := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			defer store.Close()

			var wg sync.WaitGroup
			for i := 0; i < 4; i++ {
				wg.Add(3)
				go func(i int) {
					defer wg.Done()
					habits := []models.Habit{{ID: "a", Name: "Read", Color: "orange", History: []string{"2026-03-14"}}}
					if err := store.SaveHabits(habits); err != nil {
						t.Errorf("SaveHabits() failed: %v", err)
					}
				}(i)
				go func(i int) {
					defer wg.Done()
					cache := models.EventCache{Source: "asytuyf", ByDay: map[string]int{"2026-03-13": i}}
					if err := store.SaveEventCache(cache); err != nil {
						t.Errorf("SaveEventCache() failed: %v", err)
					}
				}(i)
				go func(i int) {
					defer wg.Done()
					if _, err := store.GetHabits(); err != nil {
						t.Errorf("GetHabits() failed: %v", err)
					}
				}(i)
			}
			wg.Wait()

			habits, err := store.GetHabits()
			if err != nil {
				t.Fatalf("GetHabits() failed: %v", err)
			}
			if len(habits) != 1 || habits[0].ID != "a" {
				t.Errorf("habits after concurrent writes: %+v", habits)
			}
		})
	}
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.SaveHabits([]models.Habit{{ID: "a", Name: "Read", Color: "orange", History: []string{"2026-03-14"}}}); err != nil {
		t.Fatalf("SaveHabits() failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	habits, err := reopened.GetHabits()
	if err != nil {
		t.Fatalf("GetHabits() failed: %v", err)
	}
	if len(habits) != 1 || !habits[0].Completed("2026-03-14") {
		t.Errorf("reopened store lost data: %+v", habits)
	}
}

func TestInitTwiceJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("second Init() should refuse to overwrite existing storage")
	}
}
