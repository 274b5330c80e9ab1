package cli

import (
	"fmt"

	"balanceday/internal/insights"
)

type HistoryCmd struct {
	Limit int `help:"Number of recent days to show." default:"7"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plans, err := ctx.Store.RecentPlans(defaultUser, c.Limit)
	if err != nil {
		return err
	}

	summary := insights.Summarize(plans)

	if summary.Days == 0 {
		fmt.Println("No history yet.")
		for _, rec := range summary.Recommendations {
			fmt.Println(dimStyle.Render(rec))
		}
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Last %d day(s)", summary.Days)))
	for _, plan := range plans {
		fmt.Printf("%s  score %s  %d done, %d skipped, %d wellness\n",
			plan.Date,
			pointsStyle.Render(fmt.Sprintf("%3d", plan.BalanceScore.Overall)),
			len(plan.CompletedTasks), len(plan.SkippedTasks), plan.WellnessActivities)
	}

	fmt.Println()
	fmt.Printf("Average score %.1f, trend %s\n", summary.AverageScore, summary.Trend)
	fmt.Printf("Wellness: %.1f activities/day, %d%% of days\n",
		summary.AverageWellnessActivities, summary.ConsistencyScore)
	for _, rec := range summary.Recommendations {
		fmt.Println(dimStyle.Render("» " + rec))
	}

	return nil
}
