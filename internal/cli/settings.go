package cli

import (
	"fmt"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/utils"
	"github.com/asytuyf/genesis-vault/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	GitHubUser  *string `help:"Account for the activity feed and repo showcase."`
	Timezone    *string `help:"IANA timezone for day boundaries."`
	HeatmapDays *int    `help:"Default heatmap window in days."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  GitHub User:   %s\n", settings.GitHubUser)
		fmt.Printf("  Timezone:      %s\n", settings.Timezone)
		fmt.Printf("  Heatmap Days:  %d\n", settings.HeatmapDays)
		fmt.Println("\nFocus Settings:")
		fmt.Printf("  Work Minutes:  %d\n", settings.Focus.WorkMinutes)
		fmt.Printf("  Break Minutes: %d\n", settings.Focus.BreakMinutes)
		return nil
	}

	updated := false
	if c.GitHubUser != nil {
		settings.GitHubUser = *c.GitHubUser
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.HeatmapDays != nil {
		if *c.HeatmapDays < 1 || *c.HeatmapDays > constants.MaxHeatmapDays {
			return fmt.Errorf("heatmap days must be between 1 and %d", constants.MaxHeatmapDays)
		}
		settings.HeatmapDays = *c.HeatmapDays
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if result := validation.ValidateSettings(settings); result.HasConflicts() {
		return fmt.Errorf("invalid settings:\n%s", result.FormatReport())
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
