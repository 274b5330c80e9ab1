package cli

import (
	"fmt"
	"time"

	"balanceday/internal/balance"
	"balanceday/internal/constants"
	"balanceday/internal/gamify"
	"balanceday/internal/models"
	"balanceday/internal/scheduler"
	"balanceday/internal/storage"
	"balanceday/internal/timeutil"
)

type RescheduleCmd struct {
	Task    string `arg:"" help:"Task id or name."`
	At      string `help:"Explicit new start time (HH:MM or h:mm AM), skips slot search."`
	Optimal bool   `help:"Search for the best slot by energy and clustering instead of appending at the end."`
}

func (c *RescheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	date := now.Format(constants.DateFormat)
	plan, err := ctx.Store.GetPlan(defaultUser, date)
	if err == storage.ErrNotFound {
		return fmt.Errorf("no plan for today, run 'balanceday plan' first")
	}
	if err != nil {
		return err
	}

	item, err := findScheduleItem(plan.Schedule, c.Task)
	if err != nil {
		return err
	}

	if c.At != "" {
		return c.manual(ctx, plan, item, now)
	}

	strategy := scheduler.StrategyAppendEnd
	if c.Optimal {
		strategy = scheduler.StrategyOptimalSlot
	}

	outcome, err := ctx.Scheduler.RescheduleTask(item.ActionKey(), plan.Schedule, plan.UserInput, now, strategy)
	if err != nil {
		return err
	}

	if outcome.NeedsManual {
		fmt.Printf("No slot left today for %q (%d min).\n", outcome.TaskTitle, outcome.Duration)
		fmt.Println(dimStyle.Render("Pick a time yourself with --at, e.g. --at 16:30"))
		return nil
	}

	plan.Schedule = outcome.Schedule
	fmt.Printf("Moved %q to %s - %s\n", outcome.TaskTitle, outcome.NewStart, outcome.NewEnd)
	if outcome.Reason != "" {
		fmt.Println(dimStyle.Render("   " + outcome.Reason))
	}

	return c.persist(ctx, plan, item, now)
}

func (c *RescheduleCmd) manual(ctx *Context, plan models.DailyPlan, item models.ScheduleItem, now time.Time) error {
	startMinutes, err := timeutil.ParseClock(c.At)
	if err != nil {
		return fmt.Errorf("invalid --at time: %w", err)
	}
	start := timeutil.Format12(startMinutes)
	duration := timeutil.Minutes(item.EndTime) - timeutil.Minutes(item.StartTime)

	newSchedule, err := scheduler.ManualReschedule(item.ActionKey(), plan.Schedule, start, timeutil.Format12(startMinutes+duration))
	if err != nil {
		return err
	}

	plan.Schedule = newSchedule
	fmt.Printf("Moved %q to %s\n", item.Title, start)
	return c.persist(ctx, plan, item, now)
}

// persist logs the reschedule action, rescores the day, and saves.
func (c *RescheduleCmd) persist(ctx *Context, plan models.DailyPlan, item models.ScheduleItem, now time.Time) error {
	key := item.ActionKey()
	if !contains(plan.RescheduledTasks, key) {
		plan.RescheduledTasks = append(plan.RescheduledTasks, key)
	}

	stats, err := ctx.Store.GetStats(defaultUser)
	if err != nil && err != storage.ErrNotFound {
		return err
	}

	action := models.TaskAction{
		Type:      models.ActionReschedule,
		TaskID:    key,
		Timestamp: now,
	}
	result := gamify.ProcessAction(action, stats, plan.BalanceScore, plan.UserInput)

	plan.BalanceScore = balance.Score(plan.Schedule, plan.CompletedTasks, plan.SkippedTasks, plan.RescheduledTasks)
	plan.UpdatedAt = now.Format(time.RFC3339)

	if err := ctx.Store.SavePlan(plan); err != nil {
		return err
	}
	if err := ctx.Store.SaveStats(defaultUser, result.Stats); err != nil {
		return err
	}

	fmt.Printf("%s for staying flexible\n", pointsStyle.Render(fmt.Sprintf("+%d pts", result.PointsEarned)))
	if result.Suggestion != nil {
		fmt.Println(dimStyle.Render("» " + result.Suggestion.Message))
	}
	return nil
}
