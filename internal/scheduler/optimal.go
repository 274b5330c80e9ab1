package scheduler

import (
	"sort"
	"strings"

	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

// The optimal-slot strategy scores every free gap against a synthetic hourly
// energy curve, with bonuses for clustering near similar tasks and for
// afternoon slots when the user reports low energy.

type gap struct {
	start    int
	end      int
	duration int
}

// findOptimalSlot returns the best-scoring slot for the task, or nil when no
// gap fits (the caller then falls through to the append-at-end strategy).
func findOptimalSlot(schedule models.Schedule, target models.ScheduleItem, duration int, input models.UserInput, nowMinutes int) *foundSlot {
	endMinutes := timeutil.Minutes(input.EndTime)
	gaps := findTimeGaps(schedule, nowMinutes, endMinutes)
	energy := energyByHour(input, nowMinutes, endMinutes)
	clusters := clusterSlots(schedule, target)

	type scored struct {
		g      gap
		score  float64
		reason string
	}
	var candidates []scored
	for _, g := range gaps {
		if g.duration < duration+5 {
			continue
		}
		midpoint := g.start + g.duration/2
		energyScore := 50.0
		if e, ok := energy[midpoint/60]; ok {
			energyScore = e
		}

		clusterBonus := 0.0
		for _, slot := range clusters {
			if abs(slot-g.start) < 60 {
				clusterBonus = 20
				break
			}
		}

		timePenalty := 0.0
		if endMinutes-g.start < 60 {
			timePenalty = -30
		}

		afternoonBonus := 0.0
		if input.Energy <= 4 && g.start >= 14*60 {
			afternoonBonus = 15
		}

		candidates = append(candidates, scored{
			g:      g,
			score:  energyScore + clusterBonus + timePenalty + afternoonBonus,
			reason: slotReason(energyScore, clusterBonus, afternoonBonus, input),
		})
	}

	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	best := candidates[0]
	start := best.g.start + 5
	return &foundSlot{
		start:  timeutil.Format12(start),
		end:    timeutil.Format12(start + duration),
		reason: best.reason,
	}
}

// findTimeGaps returns the free intervals of at least 20 minutes between
// scheduled items, from startMinutes to endMinutes.
func findTimeGaps(schedule models.Schedule, startMinutes, endMinutes int) []gap {
	var items models.Schedule
	for _, item := range schedule {
		if timeutil.Minutes(item.StartTime) >= startMinutes {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return timeutil.Minutes(items[i].StartTime) < timeutil.Minutes(items[j].StartTime)
	})

	var gaps []gap
	current := startMinutes
	for _, item := range items {
		itemStart := timeutil.Minutes(item.StartTime)
		itemEnd := timeutil.Minutes(item.EndTime)
		if itemStart > current {
			gaps = append(gaps, gap{start: current, end: itemStart, duration: itemStart - current})
		}
		if itemEnd > current {
			current = itemEnd
		}
	}
	if current < endMinutes {
		gaps = append(gaps, gap{start: current, end: endMinutes, duration: endMinutes - current})
	}

	out := gaps[:0]
	for _, g := range gaps {
		if g.duration >= 20 {
			out = append(out, g)
		}
	}
	return out
}

// energyByHour builds the synthetic focus curve: morning peak around 9-11,
// lunch dip, afternoon recovery, evening decline, scaled by the user's
// reported energy and adjusted for mood.
func energyByHour(input models.UserInput, startMinutes, endMinutes int) map[int]float64 {
	base := map[int]float64{
		9: 80, 10: 85, 11: 90,
		12: 70, 13: 60,
		14: 65, 15: 75, 16: 80,
		17: 70, 18: 60, 19: 50,
	}

	levels := make(map[int]float64)
	for hour := startMinutes / 60; hour <= endMinutes/60; hour++ {
		energy, ok := base[hour]
		if !ok {
			energy = 50
		}
		energy *= float64(input.Energy) / 7

		switch input.Mood {
		case models.MoodEnergized:
			energy += 15
		case models.MoodTired:
			energy -= 20
		case models.MoodStressed:
			energy -= 10
		}

		if energy < 0 {
			energy = 0
		} else if energy > 100 {
			energy = 100
		}
		levels[hour] = energy
	}
	return levels
}

// clusterSlots returns start minutes of work items whose titles share a
// meaningful keyword with the target, so similar work can be grouped.
func clusterSlots(schedule models.Schedule, target models.ScheduleItem) []int {
	var slots []int
	for _, item := range schedule {
		if item.Type != models.ItemWork || item.ID == target.ID {
			continue
		}
		if titlesSimilar(item.Title, target.Title) {
			slots = append(slots, timeutil.Minutes(item.StartTime))
		}
	}
	return slots
}

func titlesSimilar(a, b string) bool {
	wordsB := strings.Fields(strings.ToLower(b))
	for _, word := range strings.Fields(strings.ToLower(a)) {
		if len(word) <= 3 {
			continue
		}
		for _, other := range wordsB {
			if word == other {
				return true
			}
		}
	}
	return false
}

func slotReason(energyScore, clusterBonus, afternoonBonus float64, input models.UserInput) string {
	switch {
	case energyScore >= 80:
		return "moved to your peak focus time for optimal performance"
	case clusterBonus > 0:
		return "grouped with similar tasks for better workflow"
	case afternoonBonus > 0:
		return "scheduled for afternoon when you have more energy"
	case input.Mood == models.MoodStressed:
		return "moved to a calmer time slot to reduce pressure"
	default:
		return "optimized for better work-life balance"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
