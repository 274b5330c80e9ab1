// Package balance computes the four-part balance score from a schedule and
// the session's action sets. Scoring is pure: callers pass the full current
// sets every time and the score is recomputed from scratch, never patched.
package balance

import (
	"math"

	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

const (
	workBudget     = 70.0
	wellnessBudget = 30.0
	skipPenalty    = 5.0
)

// Score is the canonical point-budget policy. 70 points are split evenly
// across work items and 30 across break/wellness items; completions earn the
// full share, reschedules half, and each skipped work item costs a flat
// penalty.
func Score(schedule models.Schedule, completed, skipped, rescheduled []string) models.BalanceScore {
	completedSet := toSet(completed)
	skippedSet := toSet(skipped)
	rescheduledSet := toSet(rescheduled)

	workItems := schedule.WorkItems()
	wellnessItems := schedule.WellnessItems()

	workPoints := 0.0
	if len(workItems) > 0 {
		workPoints = workBudget / float64(len(workItems))
	}
	wellnessPoints := 0.0
	if len(wellnessItems) > 0 {
		wellnessPoints = wellnessBudget / float64(len(wellnessItems))
	}

	var earned, productivityEarned, wellnessEarned float64

	for _, item := range workItems {
		key := item.ActionKey()
		switch {
		case completedSet[key]:
			earned += workPoints
			productivityEarned += workPoints
		case rescheduledSet[key]:
			earned += 0.5 * workPoints
			productivityEarned += 0.5 * workPoints
		case skippedSet[key]:
			earned -= skipPenalty
		}
	}

	for _, item := range wellnessItems {
		key := item.ActionKey()
		switch {
		case completedSet[key]:
			earned += wellnessPoints
			wellnessEarned += wellnessPoints
		case rescheduledSet[key]:
			earned += 0.5 * wellnessPoints
			wellnessEarned += 0.5 * wellnessPoints
		}
	}

	productivity := 0
	if len(workItems) > 0 {
		productivity = clamp(round(100 * productivityEarned / (workPoints * float64(len(workItems)))))
	}
	wellness := 0
	if len(wellnessItems) > 0 {
		wellness = clamp(round(100 * wellnessEarned / (wellnessPoints * float64(len(wellnessItems)))))
	}

	consistency := 0
	totalActioned := len(completed) + len(skipped) + len(rescheduled)
	if totalActioned > 0 {
		consistency = clamp(round(100 * (float64(len(completed)) + 0.7*float64(len(rescheduled))) / float64(totalActioned)))
	}

	return models.BalanceScore{
		Overall:      clamp(round(earned)),
		Productivity: productivity,
		Wellness:     wellness,
		Consistency:  consistency,
	}
}

// TimeWeightedScore is the alternative duration-weighted policy, kept for
// back-compat testing. Each sub-score is clamped to [0,100] before the three
// are averaged into the overall value.
func TimeWeightedScore(schedule models.Schedule, input models.UserInput, completed []string) models.BalanceScore {
	productivity := clamp(timeWeightedProductivity(schedule, toSet(completed)))
	wellness := clamp(timeWeightedWellness(schedule, input))
	consistency := clamp(timeWeightedConsistency(schedule))

	return models.BalanceScore{
		Overall:      clamp(round(float64(productivity+wellness+consistency) / 3)),
		Productivity: productivity,
		Wellness:     wellness,
		Consistency:  consistency,
	}
}

func timeWeightedProductivity(schedule models.Schedule, completed map[string]bool) int {
	workItems := schedule.WorkItems()
	totalWork := 0
	completedWork := 0
	for _, item := range workItems {
		d := duration(item)
		totalWork += d
		if completed[item.TaskID] {
			completedWork += d
		}
	}
	if totalWork == 0 {
		return 0
	}

	completionRate := float64(completedWork) / float64(totalWork) * 100

	averageBlock := float64(totalWork) / float64(len(workItems))
	const idealBlock = 60.0
	distribution := math.Max(0, 100-math.Abs(averageBlock-idealBlock))

	return round(completionRate*0.7 + distribution*0.3)
}

func timeWeightedWellness(schedule models.Schedule, input models.UserInput) int {
	if len(schedule) == 0 {
		return 0
	}
	ratio := float64(len(schedule.WellnessItems())) / float64(len(schedule)) * 100

	moodBonus := 0.0
	switch input.Mood {
	case models.MoodStressed:
		if ratio > 25 {
			moodBonus = 20
		} else {
			moodBonus = -10
		}
	case models.MoodTired:
		if ratio > 30 {
			moodBonus = 15
		} else {
			moodBonus = -15
		}
	case models.MoodEnergized:
		if ratio > 15 {
			moodBonus = 10
		}
	case models.MoodBalanced:
		if ratio >= 20 && ratio <= 25 {
			moodBonus = 10
		}
	}

	energyAdjustment := 0.0
	if input.Energy <= 4 {
		if ratio > 25 {
			energyAdjustment = 15
		} else {
			energyAdjustment = -20
		}
	}

	return round(ratio*2 + moodBonus + energyAdjustment)
}

func timeWeightedConsistency(schedule models.Schedule) int {
	if len(schedule) < 2 {
		return 100
	}
	workItems := schedule.WorkItems()
	if len(workItems) < 2 {
		return 50
	}

	durations := make([]float64, len(workItems))
	sum := 0.0
	for i, item := range workItems {
		durations[i] = float64(duration(item))
		sum += durations[i]
	}
	average := sum / float64(len(durations))

	variance := 0.0
	for _, d := range durations {
		variance += (d - average) * (d - average)
	}
	variance /= float64(len(durations))
	stddev := math.Sqrt(variance)

	consistencyScore := math.Max(0, 100-stddev*2)

	breakDistribution := 100.0
	for i := 1; i < len(schedule)-1; i++ {
		if schedule[i].Type != models.ItemWork || schedule[i-1].Type != models.ItemWork {
			continue
		}
		if timeutil.Minutes(schedule[i].StartTime) == timeutil.Minutes(schedule[i-1].EndTime) {
			breakDistribution -= 10
		}
	}

	return round(consistencyScore*0.6 + breakDistribution*0.4)
}

func duration(item models.ScheduleItem) int {
	return timeutil.Minutes(item.EndTime) - timeutil.Minutes(item.StartTime)
}

func round(f float64) int {
	return int(math.Round(f))
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
