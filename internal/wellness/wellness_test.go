package wellness

import (
	"math/rand"
	"testing"
	"time"

	"balanceday/internal/models"
)

func actionAt(t models.ActionType, minuteOffset int) models.TaskAction {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	return models.TaskAction{
		Type:      t,
		TaskID:    "t",
		Timestamp: base.Add(time.Duration(minuteOffset) * time.Minute),
	}
}

func calmInput() models.UserInput {
	return models.UserInput{
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodBalanced,
		Energy:    7,
	}
}

func TestAnalyze_CalmBaseline(t *testing.T) {
	m := Analyze(models.GameStats{}, calmInput())

	if m.StressLevel != 10 {
		t.Errorf("stress = %d, want 10 for a balanced mood", m.StressLevel)
	}
	if m.InterventionNeeded {
		t.Errorf("no intervention expected at baseline, got %+v", m)
	}
}

func TestAnalyze_SkipRateDrivesStress(t *testing.T) {
	stats := models.GameStats{}
	for i := 0; i < 5; i++ {
		stats.TaskActions = append(stats.TaskActions, actionAt(models.ActionSkip, i*10))
	}

	m := Analyze(stats, calmInput())

	// Balanced mood base 10 plus the full 40-point skip-rate contribution.
	if m.StressLevel != 50 {
		t.Errorf("stress = %d, want 50 with every recent action a skip", m.StressLevel)
	}
}

func TestAnalyze_StressedLowEnergyNeedsRest(t *testing.T) {
	input := models.UserInput{
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodStressed,
		Energy:    2,
	}
	stats := models.GameStats{}
	for i := 0; i < 4; i++ {
		stats.TaskActions = append(stats.TaskActions, actionAt(models.ActionSkip, i*10))
	}

	m := Analyze(stats, input)

	if !m.InterventionNeeded {
		t.Fatal("expected intervention for a stressed, low-energy user who keeps skipping")
	}
	if m.InterventionType != InterventionRest {
		t.Errorf("intervention = %s, want rest", m.InterventionType)
	}

	s := Intervention(m, stats)
	if s == nil || s.Type != models.SuggestWellness {
		t.Errorf("rest intervention suggestion = %+v, want a wellness suggestion", s)
	}
}

func TestAnalyze_BurnoutFromLongSessionWithoutCompletions(t *testing.T) {
	stats := models.GameStats{LongestStreak: 5}
	// A four-hour session of mostly skips, streak lost.
	for i := 0; i < 6; i++ {
		stats.TaskActions = append(stats.TaskActions, actionAt(models.ActionSkip, i*48))
	}

	m := Analyze(stats, calmInput())

	// 30 for the 240-min session, 25 for the low completion rate, 20 for
	// the lost streak.
	if m.BurnoutRisk != 75 {
		t.Errorf("burnout = %d, want 75", m.BurnoutRisk)
	}
	if !m.InterventionNeeded {
		t.Error("expected intervention at high burnout risk")
	}
}

func TestAnalyze_ConsistencyDefaultsWithLittleData(t *testing.T) {
	stats := models.GameStats{TaskActions: []models.TaskAction{actionAt(models.ActionComplete, 0)}}
	m := Analyze(stats, calmInput())
	if m.ConsistencyScore != 50 {
		t.Errorf("consistency = %d, want neutral 50 under five actions", m.ConsistencyScore)
	}
}

func TestDetectPattern(t *testing.T) {
	mk := func(types ...models.ActionType) []models.TaskAction {
		var out []models.TaskAction
		for i, tp := range types {
			out = append(out, actionAt(tp, i*10))
		}
		return out
	}

	cases := []struct {
		name    string
		actions []models.TaskAction
		want    string
	}{
		{"too little data", mk(models.ActionComplete), "balanced"},
		{"productive", mk(models.ActionComplete, models.ActionComplete, models.ActionComplete, models.ActionComplete, models.ActionComplete), "productive"},
		{"struggling", mk(models.ActionSkip, models.ActionSkip, models.ActionSkip, models.ActionComplete), "struggling"},
		{"inconsistent", mk(models.ActionReschedule, models.ActionReschedule, models.ActionComplete, models.ActionSkip), "inconsistent"},
		{"balanced mix", mk(models.ActionComplete, models.ActionComplete, models.ActionSkip, models.ActionReschedule), "balanced"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectPattern(tc.actions)
			if got.Pattern != tc.want {
				t.Errorf("pattern = %s, want %s", got.Pattern, tc.want)
			}
		})
	}
}

func TestSuggestBreakActivity_TiersByStress(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	inList := func(activity string, list []string) bool {
		for _, a := range list {
			if a == activity {
				return true
			}
		}
		return false
	}

	if a := SuggestBreakActivity(150, 80, rnd); !inList(a, breakActivities["high_stress_long"]) {
		t.Errorf("long high-stress session suggested %q", a)
	}
	if a := SuggestBreakActivity(30, 80, rnd); !inList(a, breakActivities["high_stress_short"]) {
		t.Errorf("short high-stress session suggested %q", a)
	}
	if a := SuggestBreakActivity(30, 50, rnd); !inList(a, breakActivities["moderate_stress"]) {
		t.Errorf("moderate stress suggested %q", a)
	}
	if a := SuggestBreakActivity(30, 10, rnd); !inList(a, breakActivities["low_stress"]) {
		t.Errorf("low stress suggested %q", a)
	}
}

func TestSuggestActivity_SuppressedAfterRecentActivity(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	last := now.Add(-10 * time.Minute)

	input := calmInput()
	input.Mood = models.MoodStressed
	input.Energy = 2

	if a := SuggestActivity(input, models.GameStats{}, &last, now, rnd); a != nil {
		t.Errorf("expected suppression within 30 minutes, got %q", a.Title)
	}
}

func TestSuggestActivity_StressTakesPriority(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	input := models.UserInput{
		Tasks:     []models.Task{{ID: "t1", EstimatedTime: 400}},
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodStressed,
		Energy:    2,
	}
	stats := models.GameStats{TaskActions: []models.TaskAction{
		actionAt(models.ActionSkip, 0), actionAt(models.ActionSkip, 10),
	}}

	a := SuggestActivity(input, stats, nil, now, rnd)
	if a == nil {
		t.Fatal("expected an activity for a stressed user")
	}
	if a.Trigger != TriggerStress {
		t.Errorf("trigger = %s, want stress", a.Trigger)
	}
}

func TestSummarizeActivities(t *testing.T) {
	s := SummarizeActivities([]string{"breathing", "breathing", "stretching"})
	if s.Total != 3 {
		t.Errorf("total = %d, want 3", s.Total)
	}
	if s.Breakdown["breathing"] != 2 {
		t.Errorf("breathing count = %d, want 2", s.Breakdown["breathing"])
	}
	if s.Recommendation == "" {
		t.Error("expected a recommendation")
	}

	empty := SummarizeActivities(nil)
	if empty.Total != 0 || empty.Recommendation == "" {
		t.Errorf("empty summary = %+v", empty)
	}
}
