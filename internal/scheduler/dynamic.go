package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"balanceday/internal/logger"
	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

// Generator produces schedules from a planning request. The production
// implementation calls an external AI service; the dynamic rescheduler only
// depends on this interface and recovers locally from any failure.
type Generator interface {
	Generate(ctx context.Context, req models.GenerateRequest) (models.Schedule, error)
}

// RescheduleRemaining replans the rest of the day after completions and
// skips. It never fails: if the generator is unavailable or errors, it falls
// back to shifting or compressing the remaining items, and if no time is
// left it returns what remains untouched.
func (s *Scheduler) RescheduleRemaining(
	ctx context.Context,
	gen Generator,
	original models.Schedule,
	input models.UserInput,
	completed, skipped, rescheduled []string,
	now time.Time,
) models.Schedule {
	currentMinutes := now.Hour()*60 + now.Minute()
	currentTime := timeutil.Format24(currentMinutes)

	completedSet := toSet(completed)
	skippedSet := toSet(skipped)
	rescheduledSet := toSet(rescheduled)

	var remaining models.Schedule
	for _, item := range original {
		key := item.ActionKey()
		if completedSet[key] || skippedSet[key] {
			continue
		}
		if timeutil.Minutes(item.StartTime) > currentMinutes {
			remaining = append(remaining, item)
		}
	}

	// Skipped tasks not yet rescheduled come back with a trimmed estimate.
	var skipCandidates []models.Task
	for _, task := range input.Tasks {
		if skippedSet[task.ID] && !rescheduledSet[task.ID] {
			task.EstimatedTime = reducedEstimate(task.EstimatedTime)
			skipCandidates = append(skipCandidates, task)
		}
	}

	if len(skipCandidates) == 0 && len(remaining) == len(original) {
		return original
	}

	endMinutes := timeutil.Minutes(input.EndTime)
	if endMinutes-currentMinutes <= 0 {
		return remaining
	}

	reduced := input
	reduced.StartTime = currentTime
	reduced.Tasks = skipCandidates
	for _, task := range input.Tasks {
		if completedSet[task.ID] || skippedSet[task.ID] {
			continue
		}
		for _, item := range remaining {
			if item.TaskID == task.ID {
				reduced.Tasks = append(reduced.Tasks, task)
				break
			}
		}
	}

	if len(reduced.Tasks) == 0 {
		// Only breaks and wellness items left.
		return remaining
	}

	feedback := fmt.Sprintf("Reschedule remaining tasks. Current time is %s.", currentTime)
	if len(skipCandidates) > 0 {
		feedback += fmt.Sprintf(" Please include the %d skipped task(s) if time allows.", len(skipCandidates))
	}

	if gen != nil {
		newSchedule, err := gen.Generate(ctx, models.GenerateRequest{
			Input:    reduced,
			Feedback: feedback,
			Preferences: models.Preferences{
				ShorterWorkBlocks: len(skipCandidates) > 0,
				MoreWellnessTime:  len(skipped) >= 2,
			},
		})
		if err == nil {
			return newSchedule
		}
		logger.Warn("dynamic reschedule generator failed, compressing locally", "error", err)
	}

	return compressRemaining(remaining, currentMinutes, endMinutes)
}

// compressRemaining fits the leftover items into the window that is left.
// With slack it shifts everything forward keeping relative spacing; without,
// it rebuilds the sequence with proportionally shortened work blocks.
func compressRemaining(items models.Schedule, startMinutes, endMinutes int) models.Schedule {
	available := endMinutes - startMinutes
	workItems := items.WorkItems()
	if len(workItems) == 0 {
		return items
	}

	totalWork := 0
	for _, item := range workItems {
		totalWork += itemDuration(item)
	}

	if float64(totalWork) <= float64(available)*0.8 {
		return shiftSchedule(items, startMinutes)
	}

	ratio := float64(available) * 0.7 / float64(totalWork)
	out := make(models.Schedule, 0, len(items))
	current := startMinutes
	for _, item := range items {
		duration := itemDuration(item)
		if item.Type == models.ItemWork {
			duration = int(math.Max(15, math.Round(float64(duration)*ratio)))
			if ratio < 1 {
				item.Description += " (compressed due to time constraints)"
			}
		} else if duration > 15 {
			duration = 15
		}
		item.StartTime = timeutil.Format12(current)
		item.EndTime = timeutil.Format12(current + duration)
		current += duration
		out = append(out, item)
	}
	return out
}

func shiftSchedule(items models.Schedule, newStart int) models.Schedule {
	if len(items) == 0 {
		return items
	}
	shift := newStart - timeutil.Minutes(items[0].StartTime)
	out := make(models.Schedule, 0, len(items))
	for _, item := range items {
		item.StartTime = timeutil.Format12(timeutil.Minutes(item.StartTime) + shift)
		item.EndTime = timeutil.Format12(timeutil.Minutes(item.EndTime) + shift)
		out = append(out, item)
	}
	return out
}

// TimeBasedSuggestion returns advisory text for the action just taken given
// how the day is going, or "" when nothing useful applies.
func TimeBasedSuggestion(action models.ActionType, timeRemaining, totalTasks, completedTasks int) string {
	completionRate := 0.0
	if totalTasks > 0 {
		completionRate = float64(completedTasks) / float64(totalTasks) * 100
	}
	hoursRemaining := float64(timeRemaining) / 60

	switch {
	case action == models.ActionSkip && hoursRemaining < 1:
		return "With limited time remaining, consider focusing on your highest priority tasks."
	case action == models.ActionComplete && completionRate > 75:
		return "Excellent progress! You're on track to complete most of your planned tasks."
	case action == models.ActionSkip && completionRate < 25:
		return "I notice you're skipping several tasks. Would you like me to adjust the schedule to better match your current energy?"
	case hoursRemaining > 2 && completionRate > 50:
		return "Great momentum! You have good time cushion to maintain this steady pace."
	}
	return ""
}

func reducedEstimate(estimate int) int {
	reduced := int(math.Round(float64(estimate) * 0.8))
	if reduced < 15 {
		return 15
	}
	return reduced
}

func itemDuration(item models.ScheduleItem) int {
	return timeutil.Minutes(item.EndTime) - timeutil.Minutes(item.StartTime)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
