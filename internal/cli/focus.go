package cli

import (
	"fmt"
	"sort"

	"github.com/asytuyf/genesis-vault/internal/utils"
)

type FocusCmd struct {
	Log FocusLogCmd `cmd:"" help:"Show completed focus sessions per day." default:"1"`
	Set FocusSetCmd `cmd:"" help:"Configure session durations."`
}

type FocusLogCmd struct {
	Days int `help:"How many recent days to show." default:"7"`
}

func (c *FocusLogCmd) Run(ctx *Context) error {
	log, err := ctx.Store.GetFocusLog()
	if err != nil {
		return err
	}
	if len(log.Sessions) == 0 {
		fmt.Println("No focus sessions recorded. Start one from the dashboard ('vault tui').")
		return nil
	}

	days := make([]string, 0, len(log.Sessions))
	for day := range log.Sessions {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if c.Days > 0 && len(days) > c.Days {
		days = days[:c.Days]
	}

	for _, day := range days {
		bar := ""
		for i := 0; i < log.Sessions[day]; i++ {
			bar += "●"
		}
		fmt.Printf("%s  %2d  %s\n", day, log.Sessions[day], bar)
	}
	return nil
}

type FocusSetCmd struct {
	Work  int `help:"Work session length in minutes." default:"0"`
	Break int `help:"Break length in minutes." default:"0"`
}

func (c *FocusSetCmd) Run(ctx *Context) error {
	if c.Work == 0 && c.Break == 0 {
		return fmt.Errorf("nothing to change; pass --work and/or --break")
	}
	if c.Work < 0 || c.Break < 0 {
		return fmt.Errorf("durations must be positive")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if c.Work > 0 {
		settings.Focus.WorkMinutes = c.Work
	}
	if c.Break > 0 {
		settings.Focus.BreakMinutes = c.Break
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Focus sessions: %s work / %s break\n",
		utils.FormatCountdown(settings.Focus.WorkMinutes*60),
		utils.FormatCountdown(settings.Focus.BreakMinutes*60))
	return nil
}
