package storage

import "github.com/asytuyf/genesis-vault/internal/models"

// Provider is the persistence boundary for the vault. Habit writes are
// whole-collection replacements: the in-memory collection is authoritative
// for the session and each mutation persists it as one unit, so partial
// writes are not possible at this granularity. Providers are safe for
// concurrent use within one process; separate vault processes on the same
// file are unguarded and last-writer-wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	GetHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// External event cache
	GetEventCache() (models.EventCache, error)
	SaveEventCache(models.EventCache) error

	// Snippets
	GetSnippets() ([]models.Snippet, error)
	AddSnippet(models.Snippet) error
	UpdateSnippet(models.Snippet) error
	DeleteSnippet(id string) error
	SaveSnippets([]models.Snippet) error

	// Goals
	GetGoals() ([]models.Goal, error)
	AddGoal(models.Goal) error
	DeleteGoal(id string) error
	SaveGoals([]models.Goal) error

	// Focus sessions
	GetFocusLog() (models.FocusLog, error)
	SaveFocusLog(models.FocusLog) error

	// Utils
	GetConfigPath() string
}
