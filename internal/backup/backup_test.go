package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/storage"
)

func setupSQLiteStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.db")
	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.SaveHabits([]models.Habit{
		{ID: "a", Name: "Read", Color: "orange", History: []string{"2026-03-13", "2026-03-14"}},
	}); err != nil {
		t.Fatalf("failed to seed habits: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
	return path
}

func setupJSONStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.SaveHabits([]models.Habit{
		{ID: "a", Name: "Read", Color: "orange", History: []string{"2026-03-14"}},
	}); err != nil {
		t.Fatalf("failed to seed habits: %v", err)
	}
	return path
}

func habitCount(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to query habits: %v", err)
	}
	return count
}

func TestCreateSQLiteSnapshot(t *testing.T) {
	dbPath := setupSQLiteStore(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}
	if got := habitCount(t, backupPath); got != 1 {
		t.Errorf("backup has %d habits, want 1", got)
	}
}

func TestCreateJSONSnapshot(t *testing.T) {
	path := setupJSONStore(t)

	mgr := NewManager(path)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("snapshot extension = %q, want .json", filepath.Ext(backupPath))
	}

	orig, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(orig) != string(copied) {
		t.Error("JSON snapshot differs from store")
	}
}

func TestCreateMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create on missing store should fail")
	}
}

func TestRotationKeepsNewest(t *testing.T) {
	path := setupJSONStore(t)
	mgr := NewManager(path)

	// Inject a clock so each snapshot lands in its own second.
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	n := 0
	mgr.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at index %d", i)
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "vault.json"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestUniqueNamesWithinOneSecond(t *testing.T) {
	path := setupJSONStore(t)
	mgr := NewManager(path)
	mgr.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		backupPath, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		name := filepath.Base(backupPath)
		if seen[name] {
			t.Errorf("duplicate backup filename: %s", name)
		}
		seen[name] = true
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupSQLiteStore(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	if err := store.SaveHabits([]models.Habit{
		{ID: "a", Name: "Read", Color: "orange", History: []string{}},
		{ID: "b", Name: "Run", Color: "blue", History: []string{}},
	}); err != nil {
		t.Fatalf("failed to modify store: %v", err)
	}
	store.Close()

	if got := habitCount(t, dbPath); got != 2 {
		t.Fatalf("pre-restore habit count = %d, want 2", got)
	}
	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := habitCount(t, dbPath); got != 1 {
		t.Errorf("post-restore habit count = %d, want 1", got)
	}
}

func TestRestoreSnapshotsCurrentStoreFirst(t *testing.T) {
	dbPath := setupSQLiteStore(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	after, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("got %d backups after restore, want %d", len(after), len(before)+1)
	}
}

func TestRestoreRejectsCorruptDatabase(t *testing.T) {
	dbPath := setupSQLiteStore(t)
	mgr := NewManager(dbPath)

	invalid := filepath.Join(mgr.BackupDir(), "invalid.db")
	if err := os.MkdirAll(mgr.BackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	if err := os.WriteFile(invalid, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to write invalid file: %v", err)
	}
	if err := mgr.Restore(invalid); err == nil {
		t.Error("Restore should reject a corrupt database")
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	mgr := NewManager(setupJSONStore(t))
	if err := mgr.Restore(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Restore of a missing backup should fail")
	}
}
