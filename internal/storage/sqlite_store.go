package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

// kv keys for JSON-valued singletons
const (
	kvSettings   = "settings"
	kvFocusLog   = "focus_log"
	kvEventCache = "event_cache"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habits (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	color    TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_days (
	habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	day      TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);
CREATE TABLE IF NOT EXISTS snippets (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	images     TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS goals (
	id       TEXT PRIMARY KEY,
	project  TEXT NOT NULL DEFAULT '',
	task     TEXT NOT NULL,
	priority TEXT NOT NULL,
	date     TEXT NOT NULL DEFAULT ''
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			HeatmapDays: constants.DefaultHeatmapDays,
			Focus: models.FocusSettings{
				WorkMinutes:  constants.DefaultWorkMinutes,
				BreakMinutes: constants.DefaultBreakMinutes,
			},
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'vault init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema is idempotent; running it on open covers upgrades from older
	// store files missing newer tables.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) getKV(key string, out interface{}) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	var value string
	row := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		return err
	}
	return json.Unmarshal([]byte(value), out)
}

func (s *SQLiteStore) setKV(key string, in interface{}) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	value, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(value))
	return err
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	if err := s.getKV(kvSettings, &settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	return s.setKV(kvSettings, settings)
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT id, name, color FROM habits ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.Color); err != nil {
			return nil, err
		}
		h.History = []string{}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dayRows, err := s.db.Query("SELECT habit_id, day FROM habit_days ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()

	byID := make(map[string]int, len(habits))
	for i, h := range habits {
		byID[h.ID] = i
	}
	for dayRows.Next() {
		var habitID, day string
		if err := dayRows.Scan(&habitID, &day); err != nil {
			return nil, err
		}
		if i, ok := byID[habitID]; ok {
			habits[i].History = append(habits[i].History, day)
		}
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}

	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

// SaveHabits replaces the whole habit collection in one transaction,
// matching the write granularity of the JSON store.
func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_days"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return err
	}

	for i, h := range habits {
		if _, err := tx.Exec(
			"INSERT INTO habits (id, name, color, position) VALUES (?, ?, ?, ?)",
			h.ID, h.Name, h.Color, i); err != nil {
			return err
		}
		for _, day := range h.History {
			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO habit_days (habit_id, day) VALUES (?, ?)",
				h.ID, day); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetEventCache() (models.EventCache, error) {
	var cache models.EventCache
	if err := s.getKV(kvEventCache, &cache); err != nil {
		if err == sql.ErrNoRows {
			return models.EventCache{}, nil
		}
		return models.EventCache{}, err
	}
	return cache, nil
}

func (s *SQLiteStore) SaveEventCache(cache models.EventCache) error {
	return s.setKV(kvEventCache, cache)
}

func (s *SQLiteStore) GetSnippets() ([]models.Snippet, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(
		"SELECT id, title, category, content, images, created_at, updated_at FROM snippets ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snippets []models.Snippet
	for rows.Next() {
		var sn models.Snippet
		var images, createdAt, updatedAt string
		if err := rows.Scan(&sn.ID, &sn.Title, &sn.Category, &sn.Content, &images, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(images), &sn.Images); err != nil {
			return nil, fmt.Errorf("failed to parse images for snippet %s: %w", sn.ID, err)
		}
		if sn.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if sn.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		snippets = append(snippets, sn)
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}
	return snippets, rows.Err()
}

func (s *SQLiteStore) AddSnippet(sn models.Snippet) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	images, err := json.Marshal(sn.Images)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		"INSERT INTO snippets (id, title, category, content, images, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		sn.ID, sn.Title, sn.Category, sn.Content, string(images),
		sn.CreatedAt.UTC().Format(time.RFC3339), sn.UpdatedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) UpdateSnippet(sn models.Snippet) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	images, err := json.Marshal(sn.Images)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE snippets SET title = ?, category = ?, content = ?, images = ?, updated_at = ? WHERE id = ?",
		sn.Title, sn.Category, sn.Content, string(images),
		time.Now().UTC().Format(time.RFC3339), sn.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snippet not found: %s", sn.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteSnippet(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec("DELETE FROM snippets WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snippet not found: %s", id)
	}
	return nil
}

// SaveSnippets replaces the whole snippet collection in one transaction.
func (s *SQLiteStore) SaveSnippets(snippets []models.Snippet) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snippets"); err != nil {
		return err
	}
	for _, sn := range snippets {
		images, err := json.Marshal(sn.Images)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			"INSERT INTO snippets (id, title, category, content, images, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			sn.ID, sn.Title, sn.Category, sn.Content, string(images),
			sn.CreatedAt.UTC().Format(time.RFC3339), sn.UpdatedAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetGoals() ([]models.Goal, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT id, project, task, priority, date FROM goals ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Project, &g.Task, &g.Priority, &g.Date); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals, rows.Err()
}

func (s *SQLiteStore) AddGoal(g models.Goal) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		"INSERT INTO goals (id, project, task, priority, date) VALUES (?, ?, ?, ?, ?)",
		g.ID, g.Project, g.Task, string(g.Priority), g.Date)
	return err
}

func (s *SQLiteStore) DeleteGoal(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	res, err := s.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("goal not found: %s", id)
	}
	return nil
}

// SaveGoals replaces the whole goal collection in one transaction.
func (s *SQLiteStore) SaveGoals(goals []models.Goal) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM goals"); err != nil {
		return err
	}
	for _, g := range goals {
		if _, err := tx.Exec(
			"INSERT INTO goals (id, project, task, priority, date) VALUES (?, ?, ?, ?, ?)",
			g.ID, g.Project, g.Task, string(g.Priority), g.Date); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetFocusLog() (models.FocusLog, error) {
	var log models.FocusLog
	if err := s.getKV(kvFocusLog, &log); err != nil {
		if err == sql.ErrNoRows {
			return models.FocusLog{Sessions: map[string]int{}}, nil
		}
		return models.FocusLog{}, err
	}
	if log.Sessions == nil {
		log.Sessions = map[string]int{}
	}
	return log, nil
}

func (s *SQLiteStore) SaveFocusLog(log models.FocusLog) error {
	return s.setKV(kvFocusLog, log)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
