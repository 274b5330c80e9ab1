package scheduler

import (
	"fmt"
	"sort"
	"time"

	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

// TaskNotFoundError is returned when a reschedule request names a task that
// is not in the schedule.
type TaskNotFoundError struct {
	TaskID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task with ID '%s' not found in schedule", e.TaskID)
}

// NotReschedulableError is returned when the target item is a break or
// wellness block rather than a work block.
type NotReschedulableError struct {
	Title string
}

func (e *NotReschedulableError) Error() string {
	return fmt.Sprintf("task '%s' is not a work task and cannot be rescheduled", e.Title)
}

// SlotConflictError is returned by manual rescheduling when the requested
// slot overlaps an existing work item.
type SlotConflictError struct {
	Title     string
	StartTime string
	EndTime   string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("requested slot conflicts with '%s' (%s - %s)", e.Title, e.StartTime, e.EndTime)
}

// Strategy selects how the smart rescheduler looks for a new slot.
type Strategy int

const (
	// StrategyAppendEnd places the task after the last work item. Default.
	StrategyAppendEnd Strategy = iota
	// StrategyOptimalSlot scores every free gap using the synthetic energy
	// curve, task clustering, and time-of-day bonuses.
	StrategyOptimalSlot
)

// RescheduleOutcome is the result of a smart reschedule. NeedsManual is a
// first-class success path: no slot was found and the caller should prompt
// the user for an explicit time.
type RescheduleOutcome struct {
	Schedule    models.Schedule
	NewStart    string
	NewEnd      string
	Reason      string
	NeedsManual bool
	TaskTitle   string
	Duration    int
}

// RescheduleTask finds a new slot for a single work item the user asked to
// move. The target is located by task id or item id.
func (s *Scheduler) RescheduleTask(
	taskID string,
	schedule models.Schedule,
	input models.UserInput,
	now time.Time,
	strategy Strategy,
) (RescheduleOutcome, error) {
	target, ok := findItem(schedule, taskID)
	if !ok {
		return RescheduleOutcome{}, &TaskNotFoundError{TaskID: taskID}
	}
	if target.Type != models.ItemWork {
		return RescheduleOutcome{}, &NotReschedulableError{Title: target.Title}
	}

	duration := itemDuration(target)
	nowMinutes := now.Hour()*60 + now.Minute()

	var slot *foundSlot
	if strategy == StrategyOptimalSlot {
		slot = findOptimalSlot(schedule, target, duration, input, nowMinutes)
	}
	if slot == nil {
		slot = appendAtEnd(schedule, target, duration, input, nowMinutes)
	}

	if slot == nil {
		return RescheduleOutcome{
			NeedsManual: true,
			TaskTitle:   target.Title,
			Duration:    duration,
		}, nil
	}

	rescheduled := target
	rescheduled.StartTime = slot.start
	rescheduled.EndTime = slot.end
	rescheduled.Description = target.Description + " (rescheduled)"

	newSchedule := replaceItem(schedule, target.ID, rescheduled)
	newSchedule = insertAutoBreaks(newSchedule)

	return RescheduleOutcome{
		Schedule:  newSchedule,
		NewStart:  slot.start,
		NewEnd:    slot.end,
		Reason:    slot.reason,
		TaskTitle: target.Title,
		Duration:  duration,
	}, nil
}

// ManualReschedule moves a task to an explicit user-chosen slot, rejecting
// any overlap with existing work items.
func ManualReschedule(taskID string, schedule models.Schedule, newStart, newEnd string) (models.Schedule, error) {
	target, ok := findItem(schedule, taskID)
	if !ok {
		return nil, &TaskNotFoundError{TaskID: taskID}
	}

	start, err := timeutil.ParseClock(newStart)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := timeutil.ParseClock(newEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	if start >= end {
		return nil, fmt.Errorf("start time %s must be before end time %s", newStart, newEnd)
	}

	for _, item := range schedule {
		if item.ID == target.ID || item.Type != models.ItemWork {
			continue
		}
		itemStart := timeutil.Minutes(item.StartTime)
		itemEnd := timeutil.Minutes(item.EndTime)
		if start < itemEnd && itemStart < end {
			return nil, &SlotConflictError{Title: item.Title, StartTime: item.StartTime, EndTime: item.EndTime}
		}
	}

	rescheduled := target
	rescheduled.StartTime = newStart
	rescheduled.EndTime = newEnd
	rescheduled.Description = fmt.Sprintf("%s (rescheduled to %s)", target.Description, newStart)

	return replaceItem(schedule, target.ID, rescheduled), nil
}

type foundSlot struct {
	start  string
	end    string
	reason string
}

// appendAtEnd is the primary strategy: place the task five minutes after the
// latest end among the other work items, or at max(now, day start) when none
// exist. Fails when the slot would run past the user's end time.
func appendAtEnd(schedule models.Schedule, target models.ScheduleItem, duration int, input models.UserInput, nowMinutes int) *foundSlot {
	latestEnd := 0
	others := 0
	for _, item := range schedule {
		if item.Type != models.ItemWork || item.ID == target.ID {
			continue
		}
		others++
		if end := timeutil.Minutes(item.EndTime); end > latestEnd {
			latestEnd = end
		}
	}

	var start int
	var reason string
	if others == 0 {
		start = nowMinutes
		if userStart := timeutil.Minutes(input.StartTime); userStart > start {
			start = userStart
		}
		reason = "moved to start of your available time"
	} else {
		start = latestEnd + 5
		reason = "moved to the end of your schedule"
	}

	end := start + duration
	if end > timeutil.Minutes(input.EndTime) {
		return nil
	}

	return &foundSlot{
		start:  timeutil.Format12(start),
		end:    timeutil.Format12(end),
		reason: reason,
	}
}

// insertAutoBreaks adds a synthetic five-minute break between adjacent work
// items that are separated by less than ten minutes.
func insertAutoBreaks(schedule models.Schedule) models.Schedule {
	out := make(models.Schedule, 0, len(schedule))
	for i, item := range schedule {
		out = append(out, item)
		if i+1 >= len(schedule) {
			continue
		}
		next := schedule[i+1]
		if item.Type != models.ItemWork || next.Type != models.ItemWork {
			continue
		}
		itemEnd := timeutil.Minutes(item.EndTime)
		nextStart := timeutil.Minutes(next.StartTime)
		if nextStart-itemEnd < 10 {
			out = append(out, models.ScheduleItem{
				ID:          fmt.Sprintf("auto-break-%s-%s", item.ID, next.ID),
				StartTime:   timeutil.Format12(itemEnd),
				EndTime:     timeutil.Format12(itemEnd + 5),
				Type:        models.ItemBreak,
				Title:       "Quick Break",
				Description: "Automatic break between tasks",
			})
		}
	}
	return out
}

func findItem(schedule models.Schedule, taskID string) (models.ScheduleItem, bool) {
	for _, item := range schedule {
		if item.TaskID == taskID || item.ID == taskID {
			return item, true
		}
	}
	return models.ScheduleItem{}, false
}

func replaceItem(schedule models.Schedule, removeID string, insert models.ScheduleItem) models.Schedule {
	out := make(models.Schedule, 0, len(schedule))
	for _, item := range schedule {
		if item.ID != removeID {
			out = append(out, item)
		}
	}
	out = append(out, insert)
	sort.SliceStable(out, func(i, j int) bool {
		return timeutil.Minutes(out[i].StartTime) < timeutil.Minutes(out[j].StartTime)
	})
	return out
}
