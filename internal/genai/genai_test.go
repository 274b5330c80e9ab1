package genai

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"balanceday/internal/models"
)

func TestParseSchedule_ProseWrappedArray(t *testing.T) {
	raw := "Here is your optimized schedule:\n```json\n[\n" +
		`{"id":"s1","taskId":"t1","startTime":"9:00 AM","endTime":"10:00 AM","type":"work","title":"Write report"},` +
		`{"id":"s2","startTime":"10:00 AM","endTime":"10:15 AM","type":"break","title":"Short Break"}` +
		"\n]\n```\nLet me know if you'd like changes!"

	schedule, err := parseSchedule(raw)
	if err != nil {
		t.Fatalf("parseSchedule: %v", err)
	}
	if len(schedule) != 2 {
		t.Fatalf("got %d items, want 2", len(schedule))
	}
	if schedule[0].TaskID != "t1" || schedule[0].Type != models.ItemWork {
		t.Errorf("first item = %+v", schedule[0])
	}
	if schedule[1].Type != models.ItemBreak {
		t.Errorf("second item type = %s, want break", schedule[1].Type)
	}
}

func TestParseSchedule_NoArray(t *testing.T) {
	if _, err := parseSchedule("I could not produce a schedule today."); err == nil {
		t.Error("expected an error for output without a JSON array")
	}
	if _, err := parseSchedule("]["); err == nil {
		t.Error("expected an error for reversed brackets")
	}
	if _, err := parseSchedule("[]"); err == nil {
		t.Error("expected an error for an empty schedule")
	}
}

func TestNormalizeItem_FillsDefaults(t *testing.T) {
	item := gjson.Parse(`{"taskId":"t9"}`)
	out := normalizeItem(item)

	if out.ID == "" {
		t.Error("expected a generated id")
	}
	if out.StartTime != "9:00 AM" || out.EndTime != "10:00 AM" {
		t.Errorf("times = %s-%s, want default 9:00 AM-10:00 AM", out.StartTime, out.EndTime)
	}
	if out.Type != models.ItemWork {
		t.Errorf("type = %s, want work fallback", out.Type)
	}
	if out.Title != "Untitled Task" {
		t.Errorf("title = %q", out.Title)
	}
	if out.TaskID != "t9" {
		t.Errorf("taskId = %q, want t9", out.TaskID)
	}
}

func TestNormalizeItem_RejectsUnknownType(t *testing.T) {
	out := normalizeItem(gjson.Parse(`{"type":"meeting","title":"Standup"}`))
	if out.Type != models.ItemWork {
		t.Errorf("type = %s, want work for unknown item types", out.Type)
	}
}

func TestSchedulingPrompt_IncludesTasksAndState(t *testing.T) {
	input := models.UserInput{
		Tasks: []models.Task{
			{ID: "t1", Name: "Deep work", EstimatedTime: 90, Priority: models.PriorityHigh},
		},
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodEnergized,
		Energy:    8,
	}

	prompt := schedulingPrompt(input)
	for _, want := range []string{"Deep work", "90 min", "high priority", "9:00 AM", "5:00 PM"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRegenerationPrompt_CarriesFeedbackAndPreferences(t *testing.T) {
	input := models.UserInput{
		Tasks:     []models.Task{{ID: "t1", Name: "Deep work", EstimatedTime: 90, Priority: models.PriorityHigh}},
		StartTime: "09:00",
		EndTime:   "17:00",
		Mood:      models.MoodBalanced,
		Energy:    6,
	}
	prompt := regenerationPrompt(input, "too many long blocks", models.Preferences{
		LongerBreaks:      true,
		ShorterWorkBlocks: true,
	})

	if !strings.Contains(prompt, "too many long blocks") {
		t.Error("prompt missing user feedback")
	}
	if !strings.Contains(prompt, "Make breaks longer") {
		t.Error("prompt missing longer-breaks adjustment")
	}
	if !strings.Contains(prompt, "Reduce work session lengths") {
		t.Error("prompt missing shorter-work-blocks adjustment")
	}
	if !strings.Contains(prompt, "REGENERATION") {
		t.Error("prompt missing regeneration framing")
	}
}

func TestTo12Hour(t *testing.T) {
	cases := []struct{ in, want string }{
		{"09:00", "9:00 AM"},
		{"13:30", "1:30 PM"},
		{"00:15", "12:15 AM"},
		{"not a time", "not a time"},
	}
	for _, tc := range cases {
		if got := to12Hour(tc.in); got != tc.want {
			t.Errorf("to12Hour(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFallbackWellnessMessage(t *testing.T) {
	if msg := fallbackWellnessMessage(models.MoodStressed, 5); !strings.Contains(msg, "breath") {
		t.Errorf("stressed fallback = %q", msg)
	}
	if msg := fallbackWellnessMessage(models.MoodBalanced, 2); msg == "" {
		t.Error("expected a low-energy fallback message")
	}
}
