package cli

import (
	"fmt"

	"balanceday/internal/balance"
	"balanceday/internal/storage"
)

type DayCmd struct {
	Date     string `arg:"" help:"Date to show (YYYY-MM-DD, 'today', or 'yesterday')." default:"today"`
	Weighted bool   `help:"Also show the time-weighted score breakdown."`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	plan, err := ctx.Store.GetPlan(defaultUser, date)
	if err == storage.ErrNotFound {
		fmt.Printf("No plan found for %s.\n", date)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Plan for %s", date)))
	fmt.Printf("%s  mood: %s, energy: %d/10\n\n",
		dimStyle.Render(plan.UserInput.StartTime+" - "+plan.UserInput.EndTime),
		plan.UserInput.Mood, plan.UserInput.Energy)

	renderSchedule(plan.Schedule, plan)
	fmt.Println()
	renderScore(plan.BalanceScore)

	if c.Weighted {
		weighted := balance.TimeWeightedScore(plan.Schedule, plan.UserInput, plan.CompletedTasks)
		fmt.Printf("Time-weighted:  %d (productivity %d, wellness %d, consistency %d)\n",
			weighted.Overall, weighted.Productivity, weighted.Wellness, weighted.Consistency)
	}

	if n := len(plan.CompletedTasks); n > 0 {
		fmt.Printf("\nCompleted %d of %d tasks", n, len(plan.UserInput.Tasks))
		if len(plan.SkippedTasks) > 0 {
			fmt.Printf(", skipped %d", len(plan.SkippedTasks))
		}
		fmt.Println()
	}

	return nil
}
