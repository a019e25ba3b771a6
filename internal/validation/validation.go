package validation

import (
	"fmt"
	"strings"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyName       ConflictType = "empty_name"
	ConflictUnknownColor    ConflictType = "unknown_color"
	ConflictInvalidDay      ConflictType = "invalid_day"
	ConflictDuplicateDay    ConflictType = "duplicate_day"
	ConflictInvalidPriority ConflictType = "invalid_priority"
	ConflictInvalidMinutes  ConflictType = "invalid_minutes"
)

// Conflict represents a detected problem in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names/ids involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// ValidateHabits checks the stored habit collection for malformed entries:
// blank names, colors outside the palette, unparseable or duplicated
// history days. Used by the doctor command; the ledger itself never
// produces these, but hand-edited store files can.
func ValidateHabits(habits []models.Habit) *Result {
	result := &Result{}
	for _, h := range habits {
		if strings.TrimSpace(h.Name) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyName,
				Description: fmt.Sprintf("habit %s has an empty name", h.ID),
				Items:       []string{h.ID},
			})
		}
		if h.Color != "" && !constants.ValidHabitColor(h.Color) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownColor,
				Description: fmt.Sprintf("habit %q has unknown color %q", h.Name, h.Color),
				Items:       []string{h.ID},
			})
		}
		seen := make(map[string]bool, len(h.History))
		for _, day := range h.History {
			if !utils.ValidDay(day) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDay,
					Description: fmt.Sprintf("habit %q has malformed day %q", h.Name, day),
					Items:       []string{h.ID, day},
				})
				continue
			}
			if seen[day] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateDay,
					Description: fmt.Sprintf("habit %q lists day %s more than once", h.Name, day),
					Items:       []string{h.ID, day},
				})
			}
			seen[day] = true
		}
	}
	return result
}

// ValidateGoals checks the stored goal log for malformed entries.
func ValidateGoals(goals []models.Goal) *Result {
	result := &Result{}
	for _, g := range goals {
		if strings.TrimSpace(g.Task) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyName,
				Description: fmt.Sprintf("goal %s has an empty task", g.ID),
				Items:       []string{g.ID},
			})
		}
		if g.Priority != constants.PriorityHigh && g.Priority != constants.PriorityNormal {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidPriority,
				Description: fmt.Sprintf("goal %q has unknown priority %q", g.Task, g.Priority),
				Items:       []string{g.ID},
			})
		}
		if g.Date != "" && !utils.ValidDay(g.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("goal %q has malformed date %q", g.Task, g.Date),
				Items:       []string{g.ID},
			})
		}
	}
	return result
}

// ValidateSettings checks persisted preferences.
func ValidateSettings(settings models.Settings) *Result {
	result := &Result{}
	if settings.Focus.WorkMinutes < 0 || settings.Focus.BreakMinutes < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidMinutes,
			Description: "focus durations must not be negative",
		})
	}
	if settings.HeatmapDays < 0 || settings.HeatmapDays > constants.MaxHeatmapDays {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidMinutes,
			Description: fmt.Sprintf("heatmap window %d outside 0..%d", settings.HeatmapDays, constants.MaxHeatmapDays),
		})
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDay,
			Description: fmt.Sprintf("unknown timezone %q", settings.Timezone),
		})
	}
	return result
}
