package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

// Document is the on-disk shape of the JSON store: one file holding every
// collection, rewritten in full on each mutation.
type Document struct {
	Version    int               `json:"version"`
	Settings   models.Settings   `json:"settings"`
	Habits     []models.Habit    `json:"habits"`
	Snippets   []models.Snippet  `json:"snippets"`
	Goals      []models.Goal     `json:"goals"`
	Focus      models.FocusLog   `json:"focus"`
	EventCache models.EventCache `json:"event_cache"`
}

// JSONStore keeps the whole document in memory and rewrites the file on each
// mutation. The mutex makes it safe to share between the event loop, the
// persistence outbox worker and feed-sync goroutines.
type JSONStore struct {
	mu   sync.Mutex
	path string
	doc  *Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &Document{
		Version: 1,
		Settings: models.Settings{
			HeatmapDays: constants.DefaultHeatmapDays,
			Focus: models.FocusSettings{
				WorkMinutes:  constants.DefaultWorkMinutes,
				BreakMinutes: constants.DefaultBreakMinutes,
			},
		},
		Habits:   []models.Habit{},
		Snippets: []models.Snippet{},
		Goals:    []models.Goal{},
		Focus:    models.FocusLog{Sessions: map[string]int{}},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'vault init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &Document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure collections are initialized
	if s.doc.Habits == nil {
		s.doc.Habits = []models.Habit{}
	}
	if s.doc.Snippets == nil {
		s.doc.Snippets = []models.Snippet{}
	}
	if s.doc.Goals == nil {
		s.doc.Goals = []models.Goal{}
	}
	if s.doc.Focus.Sessions == nil {
		s.doc.Focus.Sessions = map[string]int{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save rewrites the backing file. Callers hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.doc.Habits, nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	s.doc.Habits = habits
	return s.save()
}

func (s *JSONStore) GetEventCache() (models.EventCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return models.EventCache{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.EventCache, nil
}

func (s *JSONStore) SaveEventCache(cache models.EventCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.EventCache = cache
	return s.save()
}

func (s *JSONStore) GetSnippets() ([]models.Snippet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.doc.Snippets, nil
}

func (s *JSONStore) AddSnippet(snippet models.Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Snippets = append(s.doc.Snippets, snippet)
	return s.save()
}

func (s *JSONStore) UpdateSnippet(snippet models.Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i := range s.doc.Snippets {
		if s.doc.Snippets[i].ID == snippet.ID {
			snippet.UpdatedAt = time.Now().UTC()
			s.doc.Snippets[i] = snippet
			return s.save()
		}
	}
	return fmt.Errorf("snippet not found: %s", snippet.ID)
}

func (s *JSONStore) DeleteSnippet(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i := range s.doc.Snippets {
		if s.doc.Snippets[i].ID == id {
			s.doc.Snippets = append(s.doc.Snippets[:i], s.doc.Snippets[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("snippet not found: %s", id)
}

// SaveSnippets replaces the whole snippet collection, used by the web panel
// which sends the edited document wholesale.
func (s *JSONStore) SaveSnippets(snippets []models.Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}
	s.doc.Snippets = snippets
	return s.save()
}

func (s *JSONStore) GetGoals() ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.doc.Goals, nil
}

func (s *JSONStore) AddGoal(goal models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Goals = append(s.doc.Goals, goal)
	return s.save()
}

func (s *JSONStore) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	for i := range s.doc.Goals {
		if s.doc.Goals[i].ID == id {
			s.doc.Goals = append(s.doc.Goals[:i], s.doc.Goals[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("goal not found: %s", id)
}

// SaveGoals replaces the whole goal collection.
func (s *JSONStore) SaveGoals(goals []models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	s.doc.Goals = goals
	return s.save()
}

func (s *JSONStore) GetFocusLog() (models.FocusLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return models.FocusLog{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Focus, nil
}

func (s *JSONStore) SaveFocusLog(log models.FocusLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Focus = log
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
