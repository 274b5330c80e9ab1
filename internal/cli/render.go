package cli

import (
	"fmt"

	"balanceday/internal/models"
)

func renderSchedule(schedule models.Schedule, plan models.DailyPlan) {
	completed := toSet(plan.CompletedTasks)
	skipped := toSet(plan.SkippedTasks)

	for _, item := range schedule {
		line := fmt.Sprintf("%s - %s  %s", item.StartTime, item.EndTime, item.Title)

		var styled string
		switch item.Type {
		case models.ItemWellness:
			styled = wellnessStyle.Render(line)
		case models.ItemBreak:
			styled = breakStyle.Render(line)
		default:
			styled = workStyle.Render(line)
		}

		marker := "  "
		switch key := item.ActionKey(); {
		case completed[key]:
			marker = dimStyle.Render("✓ ")
			styled = dimStyle.Render(line)
		case skipped[key]:
			marker = dimStyle.Render("✗ ")
			styled = dimStyle.Render(line)
		}

		fmt.Println(marker + styled)
		if item.Description != "" {
			fmt.Println(dimStyle.Render("     " + item.Description))
		}
	}
}

func renderScore(score models.BalanceScore) {
	fmt.Printf("Balance score: %s (productivity %d, wellness %d, consistency %d)\n",
		pointsStyle.Render(fmt.Sprintf("%d", score.Overall)),
		score.Productivity, score.Wellness, score.Consistency)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
