// Package wellness is the read-only analysis layer over accumulated task
// actions and user state. It classifies stress, burnout risk, consistency,
// and work-life balance, and decides when an intervention should be
// surfaced. Nothing here has side effects; the caller decides whether and
// how to act on the result.
package wellness

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"balanceday/internal/models"
)

// InterventionType is the suggested intervention category, in descending
// selection priority: rest, restructure, celebration, motivation.
type InterventionType string

const (
	InterventionRest        InterventionType = "rest"
	InterventionMotivation  InterventionType = "motivation"
	InterventionRestructure InterventionType = "restructure"
	InterventionCelebration InterventionType = "celebration"
)

// Metrics is the wellness classification for one session snapshot. All
// scores are in [0,100].
type Metrics struct {
	StressLevel        int              `json:"stressLevel"`
	BurnoutRisk        int              `json:"burnoutRisk"`
	ConsistencyScore   int              `json:"consistencyScore"`
	WorkLifeBalance    int              `json:"workLifeBalance"`
	InterventionNeeded bool             `json:"interventionNeeded"`
	InterventionType   InterventionType `json:"interventionType,omitempty"`
}

// Analyze computes the wellness metrics from the action log and user input.
func Analyze(stats models.GameStats, input models.UserInput) Metrics {
	recent := lastN(stats.TaskActions, 10)
	sessionMinutes := sessionDuration(stats.TaskActions)

	stress := stressLevel(recent, input)
	burnout := burnoutRisk(stats, sessionMinutes)
	consistency := consistencyScore(stats)
	workLife := workLifeBalance(input)

	m := Metrics{
		StressLevel:      stress,
		BurnoutRisk:      burnout,
		ConsistencyScore: consistency,
		WorkLifeBalance:  workLife,
	}
	m.InterventionNeeded = stress >= 60 || burnout >= 50 || consistency <= 30
	if m.InterventionNeeded {
		m.InterventionType = interventionType(stress, burnout, consistency, stats)
	}
	return m
}

// Intervention builds the suggestion message for the selected intervention
// type, or nil when none is needed.
func Intervention(m Metrics, stats models.GameStats) *models.Suggestion {
	if !m.InterventionNeeded || m.InterventionType == "" {
		return nil
	}

	id := "wellness-" + uuid.NewString()
	switch m.InterventionType {
	case InterventionRest:
		return &models.Suggestion{
			ID:      id,
			Message: "Your wellness indicators suggest taking a longer break. How about a 20-minute walk or some deep breathing exercises?",
			Type:    models.SuggestWellness,
			Action: &models.ActionSuggestion{
				Type: "break",
				Data: map[string]any{"duration": 20, "type": "wellness", "activity": "mindful break"},
			},
		}
	case InterventionMotivation:
		total := len(stats.TaskActions)
		if total == 0 {
			total = 1
		}
		rate := float64(stats.ActionCount(models.ActionComplete)) / float64(total) * 100
		return &models.Suggestion{
			ID:      id,
			Message: fmt.Sprintf("You've completed %.0f%% of attempted tasks! Let's build on this momentum with your next task.", rate),
			Type:    models.SuggestMotivation,
		}
	case InterventionRestructure:
		return &models.Suggestion{
			ID:      id,
			Message: "I notice some difficulty with task completion. Would you like me to break down larger tasks into smaller, more manageable pieces?",
			Type:    models.SuggestAdjustment,
			Action: &models.ActionSuggestion{
				Type: "split_task",
				Data: map[string]any{"reason": "wellness_intervention"},
			},
		}
	case InterventionCelebration:
		return &models.Suggestion{
			ID:      id,
			Message: fmt.Sprintf("Outstanding work! You've maintained excellent balance and completed %d tasks in a row. Take a moment to appreciate your progress.", stats.CurrentStreak),
			Type:    models.SuggestMotivation,
		}
	}
	return nil
}

// Pattern is a coarse emotional-pattern classification of recent actions.
type Pattern struct {
	Pattern     string  `json:"pattern"` // productive, struggling, inconsistent, balanced
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// DetectPattern classifies the last six actions.
func DetectPattern(actions []models.TaskAction) Pattern {
	if len(actions) < 3 {
		return Pattern{Pattern: "balanced", Confidence: 0.3, Description: "Not enough data to establish pattern"}
	}

	recent := lastN(actions, 6)
	var completes, skips, reschedules int
	for _, a := range recent {
		switch a.Type {
		case models.ActionComplete:
			completes++
		case models.ActionSkip:
			skips++
		case models.ActionReschedule:
			reschedules++
		}
	}
	n := float64(len(recent))

	switch {
	case float64(completes)/n >= 0.8:
		return Pattern{Pattern: "productive", Confidence: 0.9, Description: "High completion rate indicates strong focus and productivity"}
	case float64(skips)/n >= 0.5:
		return Pattern{Pattern: "struggling", Confidence: 0.85, Description: "High skip rate suggests difficulty with current workload or energy levels"}
	case float64(reschedules)/n >= 0.4:
		return Pattern{Pattern: "inconsistent", Confidence: 0.7, Description: "Frequent rescheduling indicates need for better time estimation or planning"}
	default:
		return Pattern{Pattern: "balanced", Confidence: 0.6, Description: "Healthy mix of completion and flexibility"}
	}
}

var breakActivities = map[string][]string{
	"high_stress_short": {
		"Take 10 deep breaths",
		"Step outside for fresh air",
		"Drink a glass of water mindfully",
		"Do gentle neck and shoulder stretches",
	},
	"high_stress_long": {
		"Take a 15-minute walk",
		"Practice guided meditation",
		"Call a friend or family member",
		"Listen to calming music",
	},
	"moderate_stress": {
		"Stand up and stretch",
		"Make a healthy snack",
		"Tidy your workspace",
		"Review your accomplishments so far",
	},
	"low_stress": {
		"Quick energizing walk",
		"Do some jumping jacks",
		"Read something inspiring",
		"Plan your next win",
	},
}

// SuggestBreakActivity picks a break activity for the current stress tier.
func SuggestBreakActivity(sessionMinutes, stressLevel int, rnd *rand.Rand) string {
	var category string
	switch {
	case stressLevel >= 70 && sessionMinutes > 120:
		category = "high_stress_long"
	case stressLevel >= 70:
		category = "high_stress_short"
	case stressLevel >= 40:
		category = "moderate_stress"
	default:
		category = "low_stress"
	}
	options := breakActivities[category]
	return options[rnd.Intn(len(options))]
}

// stressLevel combines mood and energy bases with the recent skip rate.
// Five consecutive skips contribute the maximum 40 points from skip rate.
func stressLevel(recent []models.TaskAction, input models.UserInput) int {
	base := 0.0
	switch input.Mood {
	case models.MoodStressed:
		base += 40
	case models.MoodTired:
		base += 30
	case models.MoodBalanced:
		base += 10
	case models.MoodEnergized:
		base += 5
	}

	if input.Energy <= 3 {
		base += 25
	} else if input.Energy <= 5 {
		base += 15
	} else if input.Energy >= 8 {
		base -= 10
	}

	if len(recent) > 0 {
		skips := 0
		for _, a := range recent {
			if a.Type == models.ActionSkip {
				skips++
			}
		}
		base += float64(skips) / float64(len(recent)) * 40
	}

	return clamp(int(math.Round(base)))
}

func burnoutRisk(stats models.GameStats, sessionMinutes float64) int {
	risk := 0
	if sessionMinutes > 180 {
		risk += 30
	} else if sessionMinutes > 120 {
		risk += 15
	}

	recent := lastN(stats.TaskActions, 10)
	if len(recent) >= 5 {
		completes := 0
		for _, a := range recent {
			if a.Type == models.ActionComplete {
				completes++
			}
		}
		if float64(completes)/float64(len(recent)) < 0.3 {
			risk += 25
		}
	}

	if stats.CurrentStreak == 0 && stats.LongestStreak > 3 {
		risk += 20
	}

	return clamp(risk)
}

func consistencyScore(stats models.GameStats) int {
	if len(stats.TaskActions) < 5 {
		return 50
	}
	recent := lastN(stats.TaskActions, 8)
	completes := 0
	for _, a := range recent {
		if a.Type == models.ActionComplete {
			completes++
		}
	}
	consistency := float64(completes) / float64(len(recent)) * 100

	streakBonus := math.Min(20, float64(stats.CurrentStreak)*2)
	return clamp(int(math.Round(consistency + streakBonus)))
}

func workLifeBalance(input models.UserInput) int {
	balance := 50
	if input.Energy >= 7 {
		balance += 20
	} else if input.Energy <= 3 {
		balance -= 25
	}
	if input.Mood == models.MoodBalanced {
		balance += 15
	} else if input.Mood == models.MoodStressed {
		balance -= 20
	}
	return clamp(balance)
}

func interventionType(stress, burnout, consistency int, stats models.GameStats) InterventionType {
	switch {
	case stress >= 70 || burnout >= 60:
		return InterventionRest
	case consistency <= 20:
		return InterventionRestructure
	case stats.CurrentStreak >= 5 && stress < 30:
		return InterventionCelebration
	default:
		return InterventionMotivation
	}
}

// sessionDuration returns minutes between the first and last logged actions.
func sessionDuration(actions []models.TaskAction) float64 {
	if len(actions) == 0 {
		return 0
	}
	first := actions[0].Timestamp
	last := actions[len(actions)-1].Timestamp
	return last.Sub(first).Minutes()
}

func lastN(actions []models.TaskAction, n int) []models.TaskAction {
	if len(actions) <= n {
		return actions
	}
	return actions[len(actions)-n:]
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
