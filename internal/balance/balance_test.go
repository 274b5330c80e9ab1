package balance

import (
	"testing"

	"balanceday/internal/models"
)

func sampleSchedule() models.Schedule {
	return models.Schedule{
		{ID: "w1", TaskID: "t1", StartTime: "09:00", EndTime: "10:00", Type: models.ItemWork, Title: "Task one"},
		{ID: "b1", StartTime: "10:00", EndTime: "10:15", Type: models.ItemBreak, Title: "Short Break"},
		{ID: "w2", TaskID: "t2", StartTime: "10:15", EndTime: "11:15", Type: models.ItemWork, Title: "Task two"},
	}
}

func TestScore_FreshScheduleIsZero(t *testing.T) {
	score := Score(sampleSchedule(), nil, nil, nil)
	if score.Overall != 0 || score.Productivity != 0 || score.Wellness != 0 || score.Consistency != 0 {
		t.Errorf("fresh schedule score = %+v, want all zeros", score)
	}
}

func TestScore_HalfWorkCompleted(t *testing.T) {
	// Two work items split the 70-point budget; one break holds all 30
	// wellness points. Completing one work item earns 35.
	score := Score(sampleSchedule(), []string{"t1"}, nil, nil)

	if score.Overall != 35 {
		t.Errorf("overall = %d, want 35", score.Overall)
	}
	if score.Productivity != 50 {
		t.Errorf("productivity = %d, want 50", score.Productivity)
	}
	if score.Wellness != 0 {
		t.Errorf("wellness = %d, want 0", score.Wellness)
	}
	if score.Consistency != 100 {
		t.Errorf("consistency = %d, want 100", score.Consistency)
	}
}

func TestScore_CompletedBreakEarnsWellness(t *testing.T) {
	score := Score(sampleSchedule(), []string{"t1", "t2", "b1"}, nil, nil)

	if score.Overall != 100 {
		t.Errorf("overall = %d, want 100", score.Overall)
	}
	if score.Wellness != 100 {
		t.Errorf("wellness = %d, want 100", score.Wellness)
	}
	if score.Productivity != 100 {
		t.Errorf("productivity = %d, want 100", score.Productivity)
	}
}

func TestScore_SkipCostsFlatPenalty(t *testing.T) {
	completed := Score(sampleSchedule(), []string{"t1"}, nil, nil)
	withSkip := Score(sampleSchedule(), []string{"t1"}, []string{"t2"}, nil)

	if withSkip.Overall != completed.Overall-5 {
		t.Errorf("skip changed overall from %d to %d, want a flat -5", completed.Overall, withSkip.Overall)
	}
	if withSkip.Consistency != 50 {
		t.Errorf("consistency = %d, want 50 with one complete and one skip", withSkip.Consistency)
	}
}

func TestScore_RescheduleEarnsHalfShare(t *testing.T) {
	score := Score(sampleSchedule(), nil, nil, []string{"t1"})

	// Half of a 35-point share, rounded.
	if score.Overall != 18 {
		t.Errorf("overall = %d, want 18", score.Overall)
	}
	if score.Consistency != 70 {
		t.Errorf("consistency = %d, want 70", score.Consistency)
	}
}

func TestScore_IsIdempotent(t *testing.T) {
	a := Score(sampleSchedule(), []string{"t1"}, []string{"t2"}, nil)
	b := Score(sampleSchedule(), []string{"t1"}, []string{"t2"}, nil)
	if a != b {
		t.Errorf("same inputs scored differently: %+v vs %+v", a, b)
	}
}

func TestScore_StaysInBounds(t *testing.T) {
	// All work skipped drives raw earned negative; the score clamps at 0.
	score := Score(sampleSchedule(), nil, []string{"t1", "t2"}, nil)
	if score.Overall != 0 {
		t.Errorf("overall = %d, want 0 after clamping", score.Overall)
	}

	for _, v := range []int{score.Overall, score.Productivity, score.Wellness, score.Consistency} {
		if v < 0 || v > 100 {
			t.Errorf("component %d outside [0,100]", v)
		}
	}
}

func TestScore_EmptySchedule(t *testing.T) {
	score := Score(nil, nil, nil, nil)
	if score != (models.BalanceScore{}) {
		t.Errorf("empty schedule score = %+v, want zero value", score)
	}
}

func TestTimeWeightedScore_ComponentsBounded(t *testing.T) {
	input := models.UserInput{
		Tasks:     []models.Task{{ID: "t1", EstimatedTime: 60}, {ID: "t2", EstimatedTime: 60}},
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodBalanced,
		Energy:    6,
	}

	score := TimeWeightedScore(sampleSchedule(), input, []string{"t1"})
	for _, v := range []int{score.Overall, score.Productivity, score.Wellness, score.Consistency} {
		if v < 0 || v > 100 {
			t.Errorf("component %d outside [0,100]", v)
		}
	}
}
