package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/ledger"
	"github.com/asytuyf/genesis-vault/internal/models"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits with streaks."`
	Toggle  HabitToggleCmd  `cmd:"" help:"Toggle a habit's completion for a day."`
	Rename  HabitRenameCmd  `cmd:"" help:"Rename a habit."`
	Recolor HabitRecolorCmd `cmd:"" help:"Change a habit's accent color."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its history."`
	Streak  HabitStreakCmd  `cmd:"" help:"Show streak details for a habit."`
	Log     HabitLogCmd     `cmd:"" help:"Show the activity heatmap."`
	Sync    HabitSyncCmd    `cmd:"" help:"Refresh the external activity feed."`
}

// findHabit resolves a habit by exact name (case-insensitive) or id prefix.
func findHabit(ctx *Context, ref string) (models.Habit, error) {
	for _, h := range ctx.Ledger.Habits() {
		if strings.EqualFold(h.Name, ref) || strings.HasPrefix(h.ID, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Color string `help:"Accent color (orange, emerald, purple, red, blue, zinc)." default:"orange"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habit, res := ctx.Ledger.AddHabit(c.Name, c.Color)
	if res == ledger.Rejected {
		return fmt.Errorf("invalid habit name: %q", c.Name)
	}

	ctx.PersistHabits()
	fmt.Printf("Added habit: %s\n", HabitStyle(habit.Color).Render(habit.Name))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habits := ctx.Ledger.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'vault habit add'.")
		return nil
	}

	today := ctx.Ledger.Today()
	for _, h := range habits {
		mark := " "
		if h.Completed(today) {
			mark = "✓"
		}
		fmt.Printf("[%s] %-20s current %3d  longest %3d\n",
			mark,
			HabitStyle(h.Color).Render(h.Name),
			ctx.Ledger.CurrentStreak(h),
			ledger.LongestStreak(h))
	}
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Ledger.Today()
	}

	switch ctx.Ledger.ToggleCompletion(habit.ID, day) {
	case ledger.Rejected:
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	case ledger.NotFound:
		return fmt.Errorf("habit %q not found", c.Name)
	}

	ctx.PersistHabits()

	updated, _ := ctx.Ledger.Habit(habit.ID)
	if updated.Completed(day) {
		fmt.Printf("Marked %s done on %s\n", habit.Name, day)
	} else {
		fmt.Printf("Cleared %s on %s\n", habit.Name, day)
	}
	return nil
}

type HabitRenameCmd struct {
	Name    string `arg:"" help:"Current habit name or id."`
	NewName string `arg:"" help:"New habit name."`
}

func (c *HabitRenameCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}
	if res := ctx.Ledger.RenameHabit(habit.ID, c.NewName); res == ledger.Rejected {
		return fmt.Errorf("invalid habit name: %q", c.NewName)
	}

	ctx.PersistHabits()
	fmt.Printf("Renamed %s to %s\n", habit.Name, c.NewName)
	return nil
}

type HabitRecolorCmd struct {
	Name  string `arg:"" help:"Habit name or id."`
	Color string `arg:"" help:"New accent color."`
}

func (c *HabitRecolorCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}
	if res := ctx.Ledger.RecolorHabit(habit.ID, c.Color); res == ledger.Rejected {
		return fmt.Errorf("unknown color %q (valid: %s)", c.Color, strings.Join(constants.HabitPalette, ", "))
	}

	ctx.PersistHabits()
	fmt.Printf("Recolored %s\n", HabitStyle(c.Color).Render(habit.Name))
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if res := ctx.Ledger.RemoveHabit(habit.ID); res == ledger.NotFound {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	ctx.PersistHabits()
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitStreakCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitStreakCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", HabitStyle(habit.Color).Render(habit.Name))
	fmt.Printf("  Current streak: %d days\n", ctx.Ledger.CurrentStreak(habit))
	fmt.Printf("  Longest streak: %d days\n", ledger.LongestStreak(habit))
	fmt.Printf("  Total days:     %d\n", len(habit.History))
	return nil
}

type HabitLogCmd struct {
	Days int `help:"Window size in days." default:"0"`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if err := ctx.LoadLedger(); err != nil {
		return err
	}

	days := c.Days
	if days > constants.MaxHeatmapDays {
		return fmt.Errorf("--days must be at most %d, got %d", constants.MaxHeatmapDays, days)
	}
	if days <= 0 {
		days = ctx.Settings().HeatmapDays
	}
	if days <= 0 {
		days = constants.DefaultHeatmapDays
	}

	cache := ctx.Syncer.Cached()
	buckets := ctx.Ledger.BuildHeatmap(cache.ByDay, days)
	fmt.Print(RenderHeatmap(buckets))

	if !cache.SyncedAt.IsZero() {
		fmt.Printf("Feed synced %s\n", cache.SyncedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

type HabitSyncCmd struct {
	User string `help:"Account to sync from (default: configured user)." default:""`
}

func (c *HabitSyncCmd) Run(ctx *Context) error {
	user := c.User
	if user == "" {
		user = ctx.Settings().GitHubUser
	}
	if user == "" {
		return fmt.Errorf("no account configured; set one with 'vault settings --github-user'")
	}

	timeout, cancel := context.WithTimeout(context.Background(), constants.GitHubHTTPTimeout)
	defer cancel()

	cache := ctx.Syncer.Sync(timeout, user)
	if len(cache.Events) == 0 {
		fmt.Println("Sync finished with no events (feed unreachable or empty).")
		return nil
	}

	fmt.Printf("Synced %d events across %d days for %s\n", len(cache.Events), len(cache.ByDay), user)
	return nil
}
