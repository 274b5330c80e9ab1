// Package gamify scores completion, skip, and reschedule actions into
// points, streaks, levels, and achievements, and emits the advisory
// suggestion side channel.
package gamify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"balanceday/internal/models"
)

// Point table for task actions.
const (
	PointsComplete      = 15
	PointsCompleteEarly = 20
	PointsCompleteLate  = 10
	PointsSkip          = -5
	PointsReschedule    = 2
	StreakBonus         = 5
	WellnessBonus       = 10
	EnergyMatchBonus    = 8

	// ReasonEarly and ReasonLate are the recognized completion reason tags.
	ReasonEarly = "early"
	ReasonLate  = "late"

	pointsPerLevel = 100
)

var achievementCatalog = []models.Achievement{
	{ID: "first-complete", Title: "First Victory", Description: "Complete your first task", Icon: "target"},
	{ID: "streak-3", Title: "Momentum Building", Description: "Complete 3 tasks in sequence", Icon: "trending-up"},
	{ID: "streak-7", Title: "Peak Performance", Description: "Complete 7 tasks in sequence", Icon: "zap"},
	{ID: "points-100", Title: "Century Milestone", Description: "Reach 100 total points", Icon: "award"},
	{ID: "wellness-master", Title: "Balance Master", Description: "Maintain optimal wellness score", Icon: "heart"},
}

// Result is the outcome of processing one task action.
type Result struct {
	Stats           models.GameStats
	PointsEarned    int
	NewAchievements []models.Achievement
	Suggestion      *models.Suggestion
}

// ProcessAction applies one action to the session stats: base points by
// action type, streak and energy-match bonuses, the wellness bonus from the
// current balance score, then level and achievement re-evaluation. The
// action log is append-only; achievements unlock exactly once.
func ProcessAction(
	action models.TaskAction,
	stats models.GameStats,
	score models.BalanceScore,
	input models.UserInput,
) Result {
	points := 0
	streak := stats.CurrentStreak

	switch action.Type {
	case models.ActionComplete:
		points = PointsComplete
		switch action.Reason {
		case ReasonEarly:
			points = PointsCompleteEarly
		case ReasonLate:
			points = PointsCompleteLate
		}
		streak++
		if streak >= 3 {
			points += StreakBonus
		}
		if matchesEnergyWindow(input, action) {
			points += EnergyMatchBonus
		}
	case models.ActionSkip:
		points = PointsSkip
		streak = 0
	case models.ActionReschedule:
		points = PointsReschedule
	}

	if score.Wellness >= 80 {
		points += WellnessBonus
	}

	action.Points = points

	updated := stats
	updated.TotalPoints = stats.TotalPoints + points
	updated.CurrentStreak = streak
	if streak > updated.LongestStreak {
		updated.LongestStreak = streak
	}
	updated.Level = LevelForPoints(updated.TotalPoints)
	updated.TaskActions = append(append([]models.TaskAction{}, stats.TaskActions...), action)

	unlocked := checkAchievements(stats, updated, score, action.Timestamp)
	updated.Achievements = append(append([]models.Achievement{}, stats.Achievements...), unlocked...)

	return Result{
		Stats:           updated,
		PointsEarned:    points,
		NewAchievements: unlocked,
		Suggestion:      suggestionFor(action, updated, score),
	}
}

// LevelForPoints maps total points to a level. Points may go negative
// transiently; the level floors at 1.
func LevelForPoints(totalPoints int) int {
	level := totalPoints/pointsPerLevel + 1
	if level < 1 {
		return 1
	}
	return level
}

// LevelProgress describes position within the current level.
type LevelProgress struct {
	CurrentLevel       int
	PointsInLevel      int
	PointsToNextLevel  int
	ProgressPercentage float64
}

// Progress returns the level breakdown for a points total.
func Progress(totalPoints int) LevelProgress {
	inLevel := totalPoints % pointsPerLevel
	if inLevel < 0 {
		inLevel += pointsPerLevel
	}
	return LevelProgress{
		CurrentLevel:       LevelForPoints(totalPoints),
		PointsInLevel:      inLevel,
		PointsToNextLevel:  pointsPerLevel - inLevel,
		ProgressPercentage: float64(inLevel) / pointsPerLevel * 100,
	}
}

// MotivationalMessage picks a status line for the current stats.
func MotivationalMessage(stats models.GameStats) string {
	switch {
	case stats.CurrentStreak >= 5:
		return fmt.Sprintf("Outstanding performance with %d consecutive completions", stats.CurrentStreak)
	case stats.TotalPoints >= 500:
		return fmt.Sprintf("Level %d achieved with %d total points earned", stats.Level, stats.TotalPoints)
	case stats.CurrentStreak >= 3:
		return fmt.Sprintf("Strong momentum maintained: %d tasks completed", stats.CurrentStreak)
	default:
		return fmt.Sprintf("Level %d - Building consistent productive habits", stats.Level)
	}
}

// checkAchievements evaluates the catalog against the post-action stats.
// Ids already unlocked are never re-unlocked.
func checkAchievements(old, updated models.GameStats, score models.BalanceScore, at time.Time) []models.Achievement {
	var unlocked []models.Achievement
	for _, achievement := range achievementCatalog {
		if old.HasAchievement(achievement.ID) {
			continue
		}

		earned := false
		switch achievement.ID {
		case "points-100":
			earned = updated.TotalPoints >= 100
		case "streak-3":
			earned = updated.CurrentStreak >= 3
		case "streak-7":
			earned = updated.CurrentStreak >= 7
		case "first-complete":
			earned = updated.ActionCount(models.ActionComplete) >= 1
		case "wellness-master":
			earned = score.Wellness >= 80
		}

		if earned {
			a := achievement
			if !at.IsZero() {
				ts := at
				a.UnlockedAt = &ts
			}
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// suggestionFor emits at most one contextual suggestion for the action just
// processed. Advisory only; callers may drop it.
func suggestionFor(action models.TaskAction, stats models.GameStats, score models.BalanceScore) *models.Suggestion {
	recent := stats.TaskActions
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	skips := 0
	for _, a := range recent {
		if a.Type == models.ActionSkip {
			skips++
		}
	}

	switch {
	case action.Type == models.ActionSkip && skips >= 2:
		return &models.Suggestion{
			ID:      "suggestion-" + uuid.NewString(),
			Message: "I notice you've skipped several tasks. Would you like me to break them into smaller, more manageable pieces?",
			Type:    models.SuggestAdjustment,
			Action: &models.ActionSuggestion{
				Type: "split_task",
				Data: map[string]any{"reason": "frequent_skips"},
			},
		}
	case action.Type == models.ActionComplete && stats.CurrentStreak >= 3:
		return &models.Suggestion{
			ID:      "suggestion-" + uuid.NewString(),
			Message: fmt.Sprintf("Excellent work! You're maintaining strong momentum with %d completed tasks.", stats.CurrentStreak),
			Type:    models.SuggestMotivation,
		}
	case score.Wellness < 40:
		return &models.Suggestion{
			ID:      "suggestion-" + uuid.NewString(),
			Message: "Your wellness metrics suggest taking a brief restorative break would optimize your performance.",
			Type:    models.SuggestWellness,
			Action: &models.ActionSuggestion{
				Type: "break",
				Data: map[string]any{"duration": 15, "type": "mindfulness"},
			},
		}
	case action.Type == models.ActionReschedule:
		return &models.Suggestion{
			ID:      "suggestion-" + uuid.NewString(),
			Message: "Smart adjustment. I've optimized your schedule to maintain workflow continuity.",
			Type:    models.SuggestProductivity,
		}
	}
	return nil
}

// matchesEnergyWindow reports whether the action landed in the hour window
// implied by the user's stated energy: high energy in the 9-11 morning peak,
// low energy in the 14-16 afternoon recovery.
func matchesEnergyWindow(input models.UserInput, action models.TaskAction) bool {
	hour := action.Timestamp.Hour()
	if input.Energy >= 8 && hour >= 9 && hour <= 11 {
		return true
	}
	if input.Energy <= 4 && hour >= 14 && hour <= 16 {
		return true
	}
	return false
}
