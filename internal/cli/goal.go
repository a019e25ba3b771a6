package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
	"github.com/asytuyf/genesis-vault/internal/utils"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Log a directive."`
	List   GoalListCmd   `cmd:"" help:"List directives."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a directive."`
}

type GoalAddCmd struct {
	Task     string `arg:"" help:"What needs doing."`
	Project  string `help:"Project the directive belongs to." default:""`
	Priority string `help:"Priority (High or Normal)." default:"Normal"`
	Date     string `help:"Target day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Task) == "" {
		return fmt.Errorf("directive task must not be empty")
	}

	priority := constants.Priority(c.Priority)
	if priority != constants.PriorityHigh && priority != constants.PriorityNormal {
		return fmt.Errorf("invalid priority %q (valid: High, Normal)", c.Priority)
	}

	day := c.Date
	if day == "" {
		day = ctx.Ledger.Today()
	} else if !utils.ValidDay(day) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}

	goal := models.Goal{
		ID:       uuid.New().String(),
		Project:  c.Project,
		Task:     c.Task,
		Priority: priority,
		Date:     day,
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		return err
	}
	fmt.Printf("Logged directive: %s\n", c.Task)
	return nil
}

type GoalListCmd struct {
	Project string `help:"Only show directives for this project." default:""`
	Search  string `help:"Only show directives matching this text in task or project." default:""`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.GetGoals()
	if err != nil {
		return err
	}
	sort.SliceStable(goals, func(i, j int) bool { return goals[i].Date > goals[j].Date })

	shown := 0
	for _, g := range goals {
		if c.Project != "" && !strings.EqualFold(g.Project, c.Project) {
			continue
		}
		if c.Search != "" {
			q := strings.ToLower(c.Search)
			if !strings.Contains(strings.ToLower(g.Task), q) && !strings.Contains(strings.ToLower(g.Project), q) {
				continue
			}
		}
		marker := " "
		if g.Priority == constants.PriorityHigh {
			marker = "!"
		}
		project := g.Project
		if project == "" {
			project = "-"
		}
		fmt.Printf("%s %s  %-16s %s\n", marker, g.Date, project, g.Task)
		shown++
	}
	if shown == 0 {
		fmt.Println("No directives found.")
	}
	return nil
}

type GoalDeleteCmd struct {
	Ref string `arg:"" help:"Directive id or task text."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.GetGoals()
	if err != nil {
		return err
	}
	for _, g := range goals {
		if strings.HasPrefix(g.ID, c.Ref) || strings.EqualFold(g.Task, c.Ref) {
			if err := ctx.Store.DeleteGoal(g.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted directive: %s\n", g.Task)
			return nil
		}
	}
	return fmt.Errorf("directive %q not found", c.Ref)
}
