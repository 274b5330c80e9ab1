package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"balanceday/internal/balance"
	"balanceday/internal/constants"
	"balanceday/internal/gamify"
	"balanceday/internal/models"
	"balanceday/internal/notifier"
	"balanceday/internal/scheduler"
	"balanceday/internal/storage"
	"balanceday/internal/timeutil"
	"balanceday/internal/wellness"
)

type CompleteCmd struct {
	Task string `arg:"" help:"Task id or name."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	return applyAction(ctx, c.Task, models.ActionComplete, time.Now())
}

type SkipCmd struct {
	Task string `arg:"" help:"Task id or name."`
}

func (c *SkipCmd) Run(ctx *Context) error {
	return applyAction(ctx, c.Task, models.ActionSkip, time.Now())
}

// applyAction runs the full action pipeline: log the action, award points,
// re-evaluate wellness, rescore the day, replan what remains, and persist.
func applyAction(ctx *Context, taskRef string, actionType models.ActionType, now time.Time) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	date := now.Format(constants.DateFormat)
	plan, err := ctx.Store.GetPlan(defaultUser, date)
	if err == storage.ErrNotFound {
		return fmt.Errorf("no plan for today, run 'balanceday plan' first")
	}
	if err != nil {
		return err
	}

	item, err := findScheduleItem(plan.Schedule, taskRef)
	if err != nil {
		return err
	}
	key := item.ActionKey()

	if contains(plan.CompletedTasks, key) || contains(plan.SkippedTasks, key) {
		return fmt.Errorf("%q has already been completed or skipped", item.Title)
	}

	stats, err := ctx.Store.GetStats(defaultUser)
	if err != nil && err != storage.ErrNotFound {
		return err
	}

	action := models.TaskAction{
		Type:      actionType,
		TaskID:    key,
		Timestamp: now,
		Reason:    completionTiming(item, now),
	}

	result := gamify.ProcessAction(action, stats, plan.BalanceScore, plan.UserInput)

	switch actionType {
	case models.ActionComplete:
		plan.CompletedTasks = append(plan.CompletedTasks, key)
		if item.Type != models.ItemWork {
			plan.WellnessActivities++
		}
	case models.ActionSkip:
		plan.SkippedTasks = append(plan.SkippedTasks, key)
	}

	plan.BalanceScore = balance.Score(plan.Schedule, plan.CompletedTasks, plan.SkippedTasks, plan.RescheduledTasks)

	// Replan the rest of the day around what just happened.
	replanned := ctx.Scheduler.RescheduleRemaining(context.Background(), ctx.Generator,
		plan.Schedule, plan.UserInput, plan.CompletedTasks, plan.SkippedTasks, plan.RescheduledTasks, now)
	plan.Schedule = mergeReplan(plan.Schedule, replanned, now, plan)

	plan.UpdatedAt = now.Format(time.RFC3339)
	if err := ctx.Store.SavePlan(plan); err != nil {
		return err
	}
	if err := ctx.Store.SaveStats(defaultUser, result.Stats); err != nil {
		return err
	}

	reportAction(item, result, plan)

	remaining := timeutil.Minutes(plan.UserInput.EndTime) - (now.Hour()*60 + now.Minute())
	if tip := scheduler.TimeBasedSuggestion(actionType, remaining, len(plan.UserInput.Tasks), len(plan.CompletedTasks)); tip != "" {
		fmt.Println(dimStyle.Render(tip))
	}

	metrics := wellness.Analyze(result.Stats, plan.UserInput)
	if intervention := wellness.Intervention(metrics, result.Stats); intervention != nil {
		fmt.Println()
		fmt.Println(wellnessStyle.Render("♥ " + intervention.Message))
	}

	if settings.NotificationsEnabled {
		if next := nextItem(plan.Schedule, now, plan); next != nil {
			ctx.notify(notifier.ReminderText(*next))
		}
	}

	return nil
}

func reportAction(item models.ScheduleItem, result gamify.Result, plan models.DailyPlan) {
	sign := "+"
	if result.PointsEarned < 0 {
		sign = ""
	}
	fmt.Printf("%s  %s\n", item.Title, pointsStyle.Render(fmt.Sprintf("%s%d pts", sign, result.PointsEarned)))
	fmt.Printf("Level %d, %d total points", result.Stats.Level, result.Stats.TotalPoints)
	if result.Stats.CurrentStreak > 1 {
		fmt.Printf(", %d streak", result.Stats.CurrentStreak)
	}
	fmt.Println()

	for _, a := range result.NewAchievements {
		fmt.Println(pointsStyle.Render(fmt.Sprintf("%s Achievement unlocked: %s", a.Icon, a.Title)))
		fmt.Println(dimStyle.Render("   " + a.Description))
	}

	if result.Suggestion != nil {
		fmt.Println(dimStyle.Render("» " + result.Suggestion.Message))
	}

	renderScore(plan.BalanceScore)
}

// completionTiming classifies a completion against the scheduled block.
func completionTiming(item models.ScheduleItem, now time.Time) string {
	nowMinutes := now.Hour()*60 + now.Minute()
	if nowMinutes < timeutil.Minutes(item.StartTime) {
		return gamify.ReasonEarly
	}
	if nowMinutes > timeutil.Minutes(item.EndTime) {
		return gamify.ReasonLate
	}
	return ""
}

// findScheduleItem resolves a user reference to a schedule item, by item
// id, task id, or case-insensitive title match.
func findScheduleItem(schedule models.Schedule, ref string) (models.ScheduleItem, error) {
	for _, item := range schedule {
		if item.ID == ref || (item.TaskID != "" && item.TaskID == ref) {
			return item, nil
		}
	}
	lower := strings.ToLower(ref)
	for _, item := range schedule {
		if strings.ToLower(item.Title) == lower {
			return item, nil
		}
	}
	for _, item := range schedule {
		if strings.Contains(strings.ToLower(item.Title), lower) {
			return item, nil
		}
	}
	return models.ScheduleItem{}, fmt.Errorf("no schedule item matches %q", ref)
}

// mergeReplan splices a replanned remainder back over the original
// schedule: items already past or actioned stay, upcoming ones are
// replaced by the replanned set.
func mergeReplan(original, replanned models.Schedule, now time.Time, plan models.DailyPlan) models.Schedule {
	nowMinutes := now.Hour()*60 + now.Minute()
	actioned := toSet(plan.CompletedTasks)
	for _, id := range plan.SkippedTasks {
		actioned[id] = true
	}

	var merged models.Schedule
	seen := make(map[string]bool)
	for _, item := range original {
		if actioned[item.ActionKey()] || timeutil.Minutes(item.StartTime) <= nowMinutes {
			merged = append(merged, item)
			seen[item.ID] = true
		}
	}
	for _, item := range replanned {
		if !seen[item.ID] {
			merged = append(merged, item)
			seen[item.ID] = true
		}
	}
	return merged
}

// nextItem returns the first upcoming unactioned item.
func nextItem(schedule models.Schedule, now time.Time, plan models.DailyPlan) *models.ScheduleItem {
	nowMinutes := now.Hour()*60 + now.Minute()
	actioned := toSet(plan.CompletedTasks)
	for _, id := range plan.SkippedTasks {
		actioned[id] = true
	}

	for _, item := range schedule {
		if actioned[item.ActionKey()] {
			continue
		}
		if timeutil.Minutes(item.StartTime) > nowMinutes {
			next := item
			return &next
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
