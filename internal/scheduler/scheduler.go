// Package scheduler contains the deterministic scheduling core: the
// rule-based day scheduler, the dynamic rescheduler for mid-day replanning,
// and the smart single-task rescheduler.
//
// All time arithmetic happens on minutes-since-midnight ints; schedule items
// carry formatted clock strings at the boundary.
package scheduler

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"balanceday/internal/constants"
	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

type Scheduler struct {
	rnd *rand.Rand
}

func New() *Scheduler {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand builds a scheduler with a caller-controlled random source so
// break activity selection can be pinned in tests.
func NewWithRand(rnd *rand.Rand) *Scheduler {
	return &Scheduler{rnd: rnd}
}

// Result is the outcome of rule-based generation. Dropped lists ids of tasks
// that could not fit in the window; dropping is a documented lossy behavior,
// not an error.
type Result struct {
	Items   models.Schedule
	Dropped []string
}

var shortBreakActivities = []string{
	"Grab a coffee",
	"Quick walk",
	"Hydrate",
	"Rest your eyes",
	"Deep breathing",
}

var wellnessActivities = map[models.Mood][]string{
	models.MoodStressed:  {"Meditation", "Breathing exercise", "Calming music"},
	models.MoodTired:     {"Power nap", "Coffee break", "Fresh air"},
	models.MoodBalanced:  {"Walk", "Healthy snack", "Light reading"},
	models.MoodEnergized: {"Quick exercise", "Energizing activity", "Stretch"},
}

// Generate produces a day schedule from the user's tasks, window, and state.
// Items are anchored at input.StartTime and never extend past input.EndTime.
// Tasks that cannot fit are returned in Result.Dropped rather than scheduled.
func (s *Scheduler) Generate(input models.UserInput) (Result, error) {
	if len(input.Tasks) == 0 {
		return Result{}, fmt.Errorf("no tasks to schedule")
	}
	start, err := timeutil.ParseClock(input.StartTime)
	if err != nil {
		return Result{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := timeutil.ParseClock(input.EndTime)
	if err != nil {
		return Result{}, fmt.Errorf("invalid end time: %w", err)
	}
	if start >= end {
		return Result{}, fmt.Errorf("start time %s must be before end time %s", input.StartTime, input.EndTime)
	}

	sorted := prioritizeTasks(input.Tasks, input.Mood, input.Energy)

	var result Result
	currentTime := start
	remaining := end - start
	consecutiveWork := 0

	for i, task := range sorted {
		if remaining <= 0 {
			// Out of time; everything left is dropped.
			for _, rest := range sorted[i:] {
				result.Dropped = append(result.Dropped, rest.ID)
			}
			break
		}

		if consecutiveWork >= constants.MaxFocusMinutes && remaining >= constants.WellnessBreakMinutes {
			result.Items = append(result.Items, s.wellnessBreak(currentTime, input.Mood))
			currentTime += constants.WellnessBreakMinutes
			remaining -= constants.WellnessBreakMinutes
			consecutiveWork = 0
		}

		duration := adjustDuration(task.EstimatedTime, input.Energy, input.Mood)
		if duration > remaining {
			duration = remaining
		}
		if duration < constants.MinBlockMinutes {
			result.Dropped = append(result.Dropped, task.ID)
			continue
		}

		result.Items = append(result.Items, workBlock(task, currentTime, duration))
		currentTime += duration
		remaining -= duration
		consecutiveWork += duration

		if remaining > constants.ShortBreakMinutes && consecutiveWork < constants.MaxFocusMinutes {
			result.Items = append(result.Items, s.shortBreak(currentTime))
			currentTime += constants.ShortBreakMinutes
			remaining -= constants.ShortBreakMinutes
		}
	}

	return result, nil
}

// prioritizeTasks orders tasks by a weighted priority score. Low energy
// biases toward shorter tasks; a stressed mood amplifies priority ordering.
// The sort is stable so equal scores keep their input order.
func prioritizeTasks(tasks []models.Task, mood models.Mood, energy int) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	score := func(t models.Task) float64 {
		s := float64(priorityWeight(t.Priority))
		if energy <= 4 {
			s += float64(120-t.EstimatedTime) * 0.01
		}
		if mood == models.MoodStressed {
			s += float64(priorityWeight(t.Priority)) * 0.5
		}
		return s
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i]) > score(sorted[j])
	})
	return sorted
}

func priorityWeight(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return 3
	case models.PriorityMedium:
		return 2
	default:
		return 1
	}
}

// adjustDuration scales the estimate by energy and mood multipliers.
func adjustDuration(base, energy int, mood models.Mood) int {
	multiplier := 1.0
	if energy <= 3 {
		multiplier *= 1.3
	} else if energy >= 8 {
		multiplier *= 0.9
	}
	switch mood {
	case models.MoodStressed:
		multiplier *= 1.2
	case models.MoodEnergized:
		multiplier *= 0.85
	case models.MoodTired:
		multiplier *= 1.4
	}
	return int(math.Round(float64(base) * multiplier))
}

func workBlock(task models.Task, start, duration int) models.ScheduleItem {
	return models.ScheduleItem{
		ID:          fmt.Sprintf("work-%s-%d", task.ID, start),
		TaskID:      task.ID,
		StartTime:   timeutil.Format24(start),
		EndTime:     timeutil.Format24(start + duration),
		Type:        models.ItemWork,
		Title:       task.Name,
		Description: fmt.Sprintf("%d min • %s priority", duration, task.Priority),
	}
}

func (s *Scheduler) shortBreak(start int) models.ScheduleItem {
	return models.ScheduleItem{
		ID:          fmt.Sprintf("break-%d-%s", start, uuid.NewString()[:8]),
		StartTime:   timeutil.Format24(start),
		EndTime:     timeutil.Format24(start + constants.ShortBreakMinutes),
		Type:        models.ItemBreak,
		Title:       "Short Break",
		Description: shortBreakActivities[s.rnd.Intn(len(shortBreakActivities))],
	}
}

func (s *Scheduler) wellnessBreak(start int, mood models.Mood) models.ScheduleItem {
	activities, ok := wellnessActivities[mood]
	if !ok {
		activities = wellnessActivities[models.MoodBalanced]
	}
	return models.ScheduleItem{
		ID:          fmt.Sprintf("wellness-%d-%s", start, uuid.NewString()[:8]),
		StartTime:   timeutil.Format24(start),
		EndTime:     timeutil.Format24(start + constants.WellnessBreakMinutes),
		Type:        models.ItemWellness,
		Title:       "Wellness Break",
		Description: activities[s.rnd.Intn(len(activities))],
	}
}
