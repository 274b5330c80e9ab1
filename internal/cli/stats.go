package cli

import (
	"fmt"

	"balanceday/internal/gamify"
	"balanceday/internal/models"
	"balanceday/internal/storage"
	"balanceday/internal/wellness"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	stats, err := ctx.Store.GetStats(defaultUser)
	if err == storage.ErrNotFound {
		fmt.Println("No activity yet. Complete a task to start earning points.")
		return nil
	}
	if err != nil {
		return err
	}

	progress := gamify.Progress(stats.TotalPoints)

	fmt.Println(headerStyle.Render("Your progress"))
	fmt.Printf("Level %s  %d points\n",
		pointsStyle.Render(fmt.Sprintf("%d", progress.CurrentLevel)), stats.TotalPoints)
	fmt.Printf("%d more points to level %d (%.0f%% there)\n",
		progress.PointsToNextLevel, progress.CurrentLevel+1, progress.ProgressPercentage)
	fmt.Printf("Streak: %d (best %d)\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Printf("Actions: %d completed, %d skipped, %d rescheduled\n",
		stats.ActionCount(models.ActionComplete),
		stats.ActionCount(models.ActionSkip),
		stats.ActionCount(models.ActionReschedule))

	if len(stats.Achievements) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Achievements"))
		for _, a := range stats.Achievements {
			line := fmt.Sprintf("%s %s", a.Icon, a.Title)
			if a.UnlockedAt != nil {
				line += dimStyle.Render("  (" + a.UnlockedAt.Format("Jan 2") + ")")
			}
			fmt.Println(line)
			fmt.Println(dimStyle.Render("   " + a.Description))
		}
	}

	if pattern := wellness.DetectPattern(stats.TaskActions); pattern.Confidence >= 0.6 {
		fmt.Println()
		fmt.Printf("Recent pattern: %s\n", pattern.Pattern)
		fmt.Println(dimStyle.Render(pattern.Description))
	}

	fmt.Println()
	fmt.Println(gamify.MotivationalMessage(stats))

	return nil
}
