package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/asytuyf/genesis-vault/internal/backup"
	"github.com/asytuyf/genesis-vault/internal/github"
	"github.com/asytuyf/genesis-vault/internal/ledger"
	"github.com/asytuyf/genesis-vault/internal/logger"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/outbox"
	"github.com/asytuyf/genesis-vault/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Ledger *ledger.Ledger
	Syncer *ledger.Syncer
	Outbox *outbox.Outbox
	GitHub *github.Client
}

// LoadLedger fills the in-memory ledger from storage. Commands that mutate
// habits call this before operating.
func (c *Context) LoadLedger() error {
	habits, err := c.Store.GetHabits()
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	c.Ledger.Load(habits)
	return nil
}

// PersistHabits enqueues a whole-collection habit write. The in-memory
// ledger stays authoritative; a failed write is logged by the outbox worker.
func (c *Context) PersistHabits() {
	habits := c.Ledger.Habits()
	c.Outbox.Enqueue(outbox.Task{
		Name: "save habits",
		Persist: func() error {
			return c.Store.SaveHabits(habits)
		},
	})
}

// Settings reads the persisted settings, falling back to zero values when
// the store cannot provide them.
func (c *Context) Settings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("failed to load settings", "error", err)
		return models.Settings{}
	}
	return settings
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// paletteColor maps a palette name to a terminal color.
var paletteColor = map[string]lipgloss.Color{
	"orange":  lipgloss.Color("208"),
	"emerald": lipgloss.Color("42"),
	"purple":  lipgloss.Color("135"),
	"red":     lipgloss.Color("196"),
	"blue":    lipgloss.Color("33"),
	"zinc":    lipgloss.Color("245"),
}

// HabitStyle returns a foreground style for the habit's palette color.
func HabitStyle(color string) lipgloss.Style {
	c, ok := paletteColor[color]
	if !ok {
		c = paletteColor["orange"]
	}
	return lipgloss.NewStyle().Foreground(c)
}

// RenderHeatmap draws day buckets as calendar week rows, oldest week first.
// Cell brightness scales with the day's activity count.
func RenderHeatmap(buckets []ledger.DayBucket) string {
	shades := []lipgloss.Color{"238", "22", "28", "34", "40"}

	var b strings.Builder
	for _, week := range ledger.WeekRows(buckets) {
		for _, cell := range week {
			if cell.Date == "" {
				b.WriteString("  ")
				continue
			}
			shade := cell.Count
			if shade >= len(shades) {
				shade = len(shades) - 1
			}
			b.WriteString(lipgloss.NewStyle().Foreground(shades[shade]).Render("■ "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
