package validation

import (
	"testing"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

func TestValidateHabits(t *testing.T) {
	tests := []struct {
		name          string
		habits        []models.Habit
		wantConflicts int
		wantTypes     []ConflictType
	}{
		{
			name: "clean collection",
			habits: []models.Habit{
				{ID: "a", Name: "Read", Color: "orange", History: []string{"2026-03-01", "2026-03-02"}},
			},
			wantConflicts: 0,
		},
		{
			name:          "empty name",
			habits:        []models.Habit{{ID: "a", Name: "  "}},
			wantConflicts: 1,
			wantTypes:     []ConflictType{ConflictEmptyName},
		},
		{
			name:          "unknown color",
			habits:        []models.Habit{{ID: "a", Name: "Read", Color: "mauve"}},
			wantConflicts: 1,
			wantTypes:     []ConflictType{ConflictUnknownColor},
		},
		{
			name:          "malformed day",
			habits:        []models.Habit{{ID: "a", Name: "Read", History: []string{"03/02/2026"}}},
			wantConflicts: 1,
			wantTypes:     []ConflictType{ConflictInvalidDay},
		},
		{
			name:          "duplicate day",
			habits:        []models.Habit{{ID: "a", Name: "Read", History: []string{"2026-03-01", "2026-03-01"}}},
			wantConflicts: 1,
			wantTypes:     []ConflictType{ConflictDuplicateDay},
		},
		{
			name: "multiple problems reported together",
			habits: []models.Habit{
				{ID: "a", Name: "", Color: "mauve"},
			},
			wantConflicts: 2,
			wantTypes:     []ConflictType{ConflictEmptyName, ConflictUnknownColor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateHabits(tt.habits)
			if len(result.Conflicts) != tt.wantConflicts {
				t.Fatalf("got %d conflicts, want %d: %v", len(result.Conflicts), tt.wantConflicts, result.Conflicts)
			}
			for i, want := range tt.wantTypes {
				if result.Conflicts[i].Type != want {
					t.Errorf("conflict[%d].Type = %s, want %s", i, result.Conflicts[i].Type, want)
				}
			}
		})
	}
}

func TestValidateGoals(t *testing.T) {
	goals := []models.Goal{
		{ID: "g1", Task: "Ship release", Priority: constants.PriorityHigh, Date: "2026-03-01"},
		{ID: "g2", Task: "", Priority: "Critical", Date: "bad-date"},
	}
	result := ValidateGoals(goals)
	if len(result.Conflicts) != 3 {
		t.Fatalf("got %d conflicts, want 3: %v", len(result.Conflicts), result.Conflicts)
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings models.Settings
		wantOK   bool
	}{
		{
			name:     "defaults",
			settings: models.Settings{HeatmapDays: 7, Focus: models.FocusSettings{WorkMinutes: 25, BreakMinutes: 5}},
			wantOK:   true,
		},
		{
			name:     "negative focus duration",
			settings: models.Settings{Focus: models.FocusSettings{WorkMinutes: -1}},
			wantOK:   false,
		},
		{
			name:     "heatmap window too large",
			settings: models.Settings{HeatmapDays: 1000},
			wantOK:   false,
		},
		{
			name:     "bad timezone",
			settings: models.Settings{Timezone: "Nowhere/Lost"},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSettings(tt.settings)
			if got := !result.HasConflicts(); got != tt.wantOK {
				t.Errorf("HasConflicts() = %v, want ok=%v (%s)", !got, tt.wantOK, result.FormatReport())
			}
		})
	}
}
