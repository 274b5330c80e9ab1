package scheduler

import (
	"math/rand"
	"strings"
	"testing"

	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

func testScheduler() *Scheduler {
	return NewWithRand(rand.New(rand.NewSource(1)))
}

func balancedInput(tasks ...models.Task) models.UserInput {
	return models.UserInput{
		Tasks:     tasks,
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodBalanced,
		Energy:    7,
	}
}

func task(id, name string, minutes int, priority models.Priority) models.Task {
	return models.Task{ID: id, Name: name, Priority: priority, EstimatedTime: minutes}
}

func TestGenerate_AnchorsAtRequestedStartTime(t *testing.T) {
	input := balancedInput(task("t1", "Write report", 60, models.PriorityHigh))
	input.StartTime = "11:00"

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Items) == 0 {
		t.Fatal("expected at least one item")
	}
	if got := result.Items[0].StartTime; got != "11:00" {
		t.Errorf("first item starts at %s, want 11:00", got)
	}
}

func TestGenerate_SingleTaskBalancedEnergy(t *testing.T) {
	input := models.UserInput{
		Tasks:     []models.Task{task("t1", "Deep work", 60, models.PriorityMedium)},
		StartTime: "09:00",
		EndTime:   "11:00",
		Mood:      models.MoodBalanced,
		Energy:    7,
	}

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	work := models.Schedule(result.Items).WorkItems()
	if len(work) != 1 {
		t.Fatalf("expected 1 work item, got %d", len(work))
	}
	if work[0].StartTime != "09:00" || work[0].EndTime != "10:00" {
		t.Errorf("work block is %s-%s, want 09:00-10:00", work[0].StartTime, work[0].EndTime)
	}
	if len(result.Dropped) != 0 {
		t.Errorf("unexpected dropped tasks: %v", result.Dropped)
	}
}

func TestGenerate_ErrorCases(t *testing.T) {
	s := testScheduler()

	cases := []struct {
		name  string
		input models.UserInput
	}{
		{"no tasks", models.UserInput{StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", balancedInput(task("t1", "A", 30, models.PriorityLow))},
		{"start after end", balancedInput(task("t1", "A", 30, models.PriorityLow))},
	}
	cases[1].input.StartTime = "9am-ish"
	cases[2].input.StartTime = "18:00"
	cases[2].input.EndTime = "09:00"

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Generate(tc.input); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestGenerate_ItemsNeverOverlapOrExceedWindow(t *testing.T) {
	input := balancedInput(
		task("t1", "Email triage", 45, models.PriorityLow),
		task("t2", "Design doc", 90, models.PriorityHigh),
		task("t3", "Code review", 60, models.PriorityMedium),
		task("t4", "Planning", 30, models.PriorityMedium),
	)

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	end := timeutil.Minutes(input.EndTime)
	prevEnd := timeutil.Minutes(input.StartTime)
	for _, item := range result.Items {
		s := timeutil.Minutes(item.StartTime)
		e := timeutil.Minutes(item.EndTime)
		if s < prevEnd {
			t.Errorf("item %q starts at %s before previous item ended", item.Title, item.StartTime)
		}
		if e > end {
			t.Errorf("item %q ends at %s, past window end", item.Title, item.EndTime)
		}
		if e <= s {
			t.Errorf("item %q has non-positive duration", item.Title)
		}
		prevEnd = e
	}
}

func TestGenerate_WellnessBreakAfterLongFocus(t *testing.T) {
	// Energized mood shortens blocks; two 60-min tasks at 0.85 give 51+51
	// consecutive minutes, crossing the 90-minute focus limit.
	input := balancedInput(
		task("t1", "Task one", 60, models.PriorityHigh),
		task("t2", "Task two", 60, models.PriorityHigh),
		task("t3", "Task three", 60, models.PriorityHigh),
	)
	input.Mood = models.MoodEnergized
	input.Energy = 9

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	found := false
	for _, item := range result.Items {
		if item.Type == models.ItemWellness {
			found = true
			d := timeutil.Minutes(item.EndTime) - timeutil.Minutes(item.StartTime)
			if d != 30 {
				t.Errorf("wellness break is %d min, want 30", d)
			}
		}
	}
	if !found {
		t.Error("expected a wellness break after 90+ consecutive work minutes")
	}
}

func TestGenerate_DropsTasksThatDoNotFit(t *testing.T) {
	input := models.UserInput{
		Tasks: []models.Task{
			task("t1", "Big task", 100, models.PriorityHigh),
			task("t2", "Second task", 60, models.PriorityMedium),
			task("t3", "Third task", 60, models.PriorityLow),
		},
		StartTime: "09:00",
		EndTime:   "10:30",
		Mood:      models.MoodBalanced,
		Energy:    7,
	}

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Dropped) == 0 {
		t.Fatal("expected dropped tasks in a 90-minute window")
	}
	for _, id := range result.Dropped {
		for _, item := range result.Items {
			if item.TaskID == id {
				t.Errorf("task %s is both scheduled and dropped", id)
			}
		}
	}
}

func TestGenerate_TiredMoodStretchesDurations(t *testing.T) {
	base := balancedInput(task("t1", "Focus work", 60, models.PriorityMedium))
	tired := base
	tired.Mood = models.MoodTired

	baseResult, err := testScheduler().Generate(base)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	tiredResult, err := testScheduler().Generate(tired)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	baseDur := timeutil.Minutes(baseResult.Items[0].EndTime) - timeutil.Minutes(baseResult.Items[0].StartTime)
	tiredDur := timeutil.Minutes(tiredResult.Items[0].EndTime) - timeutil.Minutes(tiredResult.Items[0].StartTime)
	if tiredDur <= baseDur {
		t.Errorf("tired duration %d should exceed balanced duration %d", tiredDur, baseDur)
	}
	if tiredDur != 84 {
		t.Errorf("tired duration = %d, want 84 (60 * 1.4)", tiredDur)
	}
}

func TestGenerate_HighPriorityFirst(t *testing.T) {
	input := balancedInput(
		task("low", "Low task", 30, models.PriorityLow),
		task("high", "High task", 30, models.PriorityHigh),
		task("med", "Medium task", 30, models.PriorityMedium),
	)

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var order []string
	for _, item := range result.Items {
		if item.Type == models.ItemWork {
			order = append(order, item.TaskID)
		}
	}
	want := []string{"high", "med", "low"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("work order = %v, want %v", order, want)
	}
}

func TestGenerate_LowEnergyPrefersShorterTasks(t *testing.T) {
	input := balancedInput(
		task("long", "Long task", 120, models.PriorityMedium),
		task("short", "Short task", 20, models.PriorityMedium),
	)
	input.Energy = 3

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	work := models.Schedule(result.Items).WorkItems()
	if len(work) == 0 || work[0].TaskID != "short" {
		t.Errorf("expected short task first at low energy, got %+v", work)
	}
}

func TestGenerate_WellnessBreakMatchesMood(t *testing.T) {
	input := balancedInput(
		task("t1", "Task one", 60, models.PriorityHigh),
		task("t2", "Task two", 60, models.PriorityHigh),
		task("t3", "Task three", 60, models.PriorityHigh),
	)
	input.Mood = models.MoodStressed

	result, err := testScheduler().Generate(input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	stressedActivities := map[string]bool{
		"Meditation": true, "Breathing exercise": true, "Calming music": true,
	}
	for _, item := range result.Items {
		if item.Type == models.ItemWellness && !stressedActivities[item.Description] {
			t.Errorf("wellness activity %q is not from the stressed set", item.Description)
		}
	}
}
