package wellness

import (
	"math/rand"
	"time"

	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

// ActivityType categorizes a guided wellness activity.
type ActivityType string

const (
	ActivityBreathing   ActivityType = "breathing"
	ActivityStretching  ActivityType = "stretching"
	ActivityHydration   ActivityType = "hydration"
	ActivityMindfulness ActivityType = "mindfulness"
)

// Trigger names the condition an activity responds to.
type Trigger string

const (
	TriggerStress   Trigger = "stress"
	TriggerFatigue  Trigger = "fatigue"
	TriggerFocus    Trigger = "focus"
	TriggerBreak    Trigger = "break"
	TriggerPeriodic Trigger = "periodic"
)

// Activity is a guided wellness exercise with step-by-step instructions.
// Duration is in seconds; zero means untimed.
type Activity struct {
	Type         ActivityType `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     int          `json:"duration,omitempty"`
	Instructions []string     `json:"instructions,omitempty"`
	Trigger      Trigger      `json:"trigger"`
}

var activityCatalog = []Activity{
	{
		Type:        ActivityBreathing,
		Title:       "4-7-8 Breathing",
		Description: "Calm your mind with deep breathing",
		Duration:    120,
		Instructions: []string{
			"Sit comfortably with your back straight",
			"Breathe in through your nose for 4 counts",
			"Hold your breath for 7 counts",
			"Exhale through your mouth for 8 counts",
			"Repeat the cycle 3-4 times",
		},
		Trigger: TriggerStress,
	},
	{
		Type:        ActivityStretching,
		Title:       "Desk Stretches",
		Description: "Release tension from sitting",
		Duration:    180,
		Instructions: []string{
			"Roll your shoulders backward 5 times",
			"Gently turn your head left and right",
			"Stretch your arms overhead and lean side to side",
			"Do some seated spinal twists",
			"Stretch your wrists and fingers",
		},
		Trigger: TriggerFatigue,
	},
	{
		Type:        ActivityHydration,
		Title:       "Hydration Break",
		Description: "Fuel your body with water",
		Instructions: []string{
			"Get a glass of water (8-12 oz)",
			"Drink slowly and mindfully",
			"Notice how the water feels",
			"Take a moment to check in with your body",
			"Consider adding lemon or herbs for variety",
		},
		Trigger: TriggerBreak,
	},
	{
		Type:        ActivityMindfulness,
		Title:       "Mindful Moment",
		Description: "Reset your focus and awareness",
		Duration:    60,
		Instructions: []string{
			"Close your eyes or soften your gaze",
			"Notice three things you can hear right now",
			"Feel your feet on the ground",
			"Take three deep, conscious breaths",
			"Set an intention for your next task",
		},
		Trigger: TriggerFocus,
	},
	{
		Type:        ActivityBreathing,
		Title:       "Quick Energy Breath",
		Description: "Boost your energy naturally",
		Duration:    60,
		Instructions: []string{
			"Sit up straight and place hands on your belly",
			"Take quick, shallow breaths for 30 seconds",
			"Then take 3 deep, slow breaths",
			"Notice the energy flowing through your body",
		},
		Trigger: TriggerFatigue,
	},
	{
		Type:        ActivityStretching,
		Title:       "Eye Rest Exercise",
		Description: "Give your eyes a break from screens",
		Duration:    90,
		Instructions: []string{
			"Look away from your screen",
			"Focus on something 20 feet away for 20 seconds",
			"Blink slowly 10 times",
			"Gently massage your temples",
			"Close your eyes for 30 seconds",
		},
		Trigger: TriggerFocus,
	},
}

// SuggestActivity picks a guided activity from the current user state, or
// nil when nothing should be surfaced. A nil lastActivity means no guided
// activity has run yet this session. Suggestions are suppressed for 30
// minutes after a completed activity.
func SuggestActivity(input models.UserInput, stats models.GameStats, lastActivity *time.Time, now time.Time, rnd *rand.Rand) *Activity {
	if lastActivity != nil && now.Sub(*lastActivity) < 30*time.Minute {
		return nil
	}

	stress := stressIndicator(input, stats)
	fatigue := fatigueIndicator(input, now)
	focus := focusIndicator(input, stats, now)

	// Priority: stress, then fatigue, then focus, then periodic.
	switch {
	case stress >= 7:
		return randomActivity(TriggerStress, rnd)
	case fatigue >= 6:
		return randomActivity(TriggerFatigue, rnd)
	case focus <= 3:
		return randomActivity(TriggerFocus, rnd)
	}

	hoursSince := 2.0
	if lastActivity != nil {
		hoursSince = now.Sub(*lastActivity).Hours()
	}
	if hoursSince >= 1.5 {
		return randomActivity(TriggerBreak, rnd)
	}
	return nil
}

// ActivitiesForTrigger returns every catalog activity for a trigger.
func ActivitiesForTrigger(t Trigger) []Activity {
	var out []Activity
	for _, a := range activityCatalog {
		if a.Trigger == t {
			out = append(out, a)
		}
	}
	return out
}

// ActivityByType returns the first catalog activity of a type, or nil.
func ActivityByType(t ActivityType) *Activity {
	for i := range activityCatalog {
		if activityCatalog[i].Type == t {
			return &activityCatalog[i]
		}
	}
	return nil
}

// ActivitySummary aggregates completed guided activities for history views.
type ActivitySummary struct {
	Total          int            `json:"total"`
	Breakdown      map[string]int `json:"breakdown"`
	Recommendation string         `json:"recommendation"`
}

// SummarizeActivities counts completed activities by type and attaches an
// encouragement message scaled to the total.
func SummarizeActivities(completed []string) ActivitySummary {
	breakdown := make(map[string]int)
	for _, t := range completed {
		breakdown[t]++
	}

	var rec string
	switch n := len(completed); {
	case n == 0:
		rec = "Try incorporating some wellness breaks into your day!"
	case n < 3:
		rec = "Great start! Consider adding more wellness moments throughout your day."
	case n < 6:
		rec = "Excellent wellness habits! You're taking good care of yourself."
	default:
		rec = "Outstanding commitment to wellness! You're a wellness champion!"
	}

	return ActivitySummary{Total: len(completed), Breakdown: breakdown, Recommendation: rec}
}

// stressIndicator scores stress on a 0-10 scale from the skip rate, energy,
// mood, and schedule pressure.
func stressIndicator(input models.UserInput, stats models.GameStats) float64 {
	score := 0.0

	if total := len(stats.TaskActions); total > 0 {
		skips := 0
		for _, a := range stats.TaskActions {
			if a.Type == models.ActionSkip {
				skips++
			}
		}
		score += float64(skips) / float64(total) * 4
	}

	if input.Energy <= 3 {
		score += 2
	}
	if input.Mood == models.MoodStressed {
		score += 3
	}

	if ratio := timeToWorkRatio(input); ratio > 0 && ratio < 1.2 {
		score += 2
	}

	if score > 10 {
		return 10
	}
	return score
}

// fatigueIndicator scores fatigue on a 0-10 scale. The post-lunch window
// (14:00-16:00) adds a point.
func fatigueIndicator(input models.UserInput, now time.Time) float64 {
	score := float64(10 - input.Energy)

	if input.Mood == models.MoodTired {
		score += 2
	}
	if averageTaskLength(input) > 90 {
		score += 2
	}
	if h := now.Hour(); h >= 14 && h <= 16 {
		score++
	}

	if score > 10 {
		return 10
	}
	return score
}

// focusIndicator scores focus capacity on a 0-10 scale; lower means the
// user needs a focus reset. Reschedules within the last hour each cost a
// point.
func focusIndicator(input models.UserInput, stats models.GameStats, now time.Time) float64 {
	score := float64(input.Energy)

	for _, a := range stats.TaskActions {
		if a.Type == models.ActionReschedule && now.Sub(a.Timestamp) < time.Hour {
			score--
		}
	}

	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func randomActivity(t Trigger, rnd *rand.Rand) *Activity {
	options := ActivitiesForTrigger(t)
	if len(options) == 0 {
		return nil
	}
	a := options[rnd.Intn(len(options))]
	return &a
}

func timeToWorkRatio(input models.UserInput) float64 {
	work := 0
	for _, t := range input.Tasks {
		work += t.EstimatedTime
	}
	if work == 0 {
		return 0
	}
	avail := timeutil.Minutes(input.EndTime) - timeutil.Minutes(input.StartTime)
	return float64(avail) / float64(work)
}

func averageTaskLength(input models.UserInput) float64 {
	if len(input.Tasks) == 0 {
		return 60
	}
	total := 0
	for _, t := range input.Tasks {
		total += t.EstimatedTime
	}
	return float64(total) / float64(len(input.Tasks))
}
