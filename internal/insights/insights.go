// Package insights aggregates stored daily plans into history summaries.
package insights

import (
	"math"

	"balanceday/internal/models"
)

// Summary is the aggregate view over a window of recent plans.
type Summary struct {
	Days                      int      `json:"days"`
	AverageScore              float64  `json:"averageScore"`
	CompletedTotal            int      `json:"completedTotal"`
	SkippedTotal              int      `json:"skippedTotal"`
	AverageWellnessActivities float64  `json:"averageWellnessActivities"`
	ConsistencyScore          int      `json:"consistencyScore"`
	Trend                     string   `json:"trend"` // improving, declining, steady
	Recommendations           []string `json:"recommendations"`
}

// Summarize aggregates plans, newest first as the storage layer returns
// them. An empty window yields a starter summary with one recommendation.
func Summarize(plans []models.DailyPlan) Summary {
	if len(plans) == 0 {
		return Summary{
			Recommendations: []string{"Start tracking your daily activities to get personalized insights!"},
		}
	}

	var scoreSum float64
	var wellnessSum, daysWithWellness int
	s := Summary{Days: len(plans)}
	for _, p := range plans {
		scoreSum += float64(p.BalanceScore.Overall)
		s.CompletedTotal += len(p.CompletedTasks)
		s.SkippedTotal += len(p.SkippedTasks)
		wellnessSum += p.WellnessActivities
		if p.WellnessActivities > 0 {
			daysWithWellness++
		}
	}
	n := float64(len(plans))
	s.AverageScore = math.Round(scoreSum/n*10) / 10
	s.AverageWellnessActivities = math.Round(float64(wellnessSum)/n*10) / 10
	s.ConsistencyScore = int(math.Round(float64(daysWithWellness) / n * 100))
	s.Trend = trend(plans)

	if s.AverageWellnessActivities < 2 {
		s.Recommendations = append(s.Recommendations, "Try to include more wellness breaks in your schedule")
	}
	if s.ConsistencyScore < 70 {
		s.Recommendations = append(s.Recommendations, "Aim for more consistent wellness practices throughout the week")
	}
	if s.AverageScore < 70 {
		s.Recommendations = append(s.Recommendations, "Consider shorter work blocks to improve your balance score")
	}

	return s
}

// trend compares the newer half of the window against the older half.
// A swing of five points or more counts as a real change.
func trend(plans []models.DailyPlan) string {
	if len(plans) < 2 {
		return "steady"
	}

	mid := len(plans) / 2
	newer := averageOverall(plans[:mid])
	older := averageOverall(plans[mid:])

	switch {
	case newer >= older+5:
		return "improving"
	case newer <= older-5:
		return "declining"
	default:
		return "steady"
	}
}

func averageOverall(plans []models.DailyPlan) float64 {
	if len(plans) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range plans {
		sum += float64(p.BalanceScore.Overall)
	}
	return sum / float64(len(plans))
}
