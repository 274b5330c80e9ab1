// Package genai generates schedules through the OpenAI chat completions
// API. It satisfies the scheduler.Generator contract; callers are expected
// to fall back to the rule-based scheduler when generation fails.
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"

	"balanceday/internal/logger"
	"balanceday/internal/models"
	"balanceday/internal/timeutil"
)

const systemPrompt = `You are a wellness and productivity assistant. Your job is to create balanced, realistic schedules that prioritize both productivity and well-being. Always consider the user's energy level, mood, and include appropriate breaks and wellness interventions.

Return your response as a valid JSON array of schedule items with this exact structure:
[
  {
    "id": "unique-id",
    "taskId": "task-id-if-work-item",
    "startTime": "9:00 AM",
    "endTime": "10:00 AM",
    "type": "work|break|wellness",
    "title": "Task Title",
    "description": "Brief description"
  }
]

Rules:
- Use the exact start and end times provided by the user
- Include 15-min breaks between work sessions
- Add 30-min wellness breaks after 90 min of consecutive work
- Adjust task durations based on user energy/mood
- Low energy = longer time estimates, more breaks
- Stressed = shorter focused sessions, more wellness breaks
- Never exceed the available time window
- Minimum task duration: 15 minutes`

const regenerateSystemPrompt = `You are a wellness and productivity assistant. The user has requested changes to their previous schedule.

CRITICAL: You must incorporate their feedback and preferences to create an improved schedule.

Return your response as a valid JSON array of schedule items with this exact structure:
[
  {
    "id": "unique-id",
    "taskId": "task-id-if-work-item",
    "startTime": "9:00 AM",
    "endTime": "10:00 AM",
    "type": "work|break|wellness",
    "title": "Task Title",
    "description": "Brief description"
  }
]

Rules:
- Apply the user's feedback and preferences FIRST
- Use the exact start and end times provided by the user
- If they want longer breaks, extend break durations
- If they want shorter work blocks, reduce work session lengths
- If they want more wellness time, add more wellness activities
- If they want different task order, rearrange based on their preference
- Still maintain balance between productivity and wellness
- Never exceed the available time window`

// Client generates schedules against the OpenAI API.
type Client struct {
	client openai.Client
	model  string
}

// NewClient creates a generation client. An empty model selects gpt-4o.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = openai.ChatModelGPT4o
	}
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// WithModel returns a copy of the client using a different model.
func (c *Client) WithModel(model string) *Client {
	if model == "" {
		return c
	}
	return &Client{client: c.client, model: model}
}

// Generate produces a schedule for the request. When the request carries
// feedback or preferences, the regeneration prompt is used so the model
// revises rather than starts fresh.
func (c *Client) Generate(ctx context.Context, req models.GenerateRequest) (models.Schedule, error) {
	system := systemPrompt
	prompt := schedulingPrompt(req.Input)
	if req.Feedback != "" || req.Preferences != (models.Preferences{}) {
		system = regenerateSystemPrompt
		prompt = regenerationPrompt(req.Input, req.Feedback, req.Preferences)
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}

	schedule, err := parseSchedule(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	logger.Debug("generated schedule", "items", len(schedule), "model", c.model)
	return schedule, nil
}

// WellnessRecommendation asks for a short encouragement message tuned to
// the user's current state. Falls back to a canned message on any failure
// so callers never need to handle an error here.
func (c *Client) WellnessRecommendation(ctx context.Context, mood models.Mood, energy, completed, total int) string {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a caring wellness assistant. Provide brief, encouraging wellness recommendations based on user state. Keep responses under 100 words and focus on actionable advice."),
			openai.UserMessage(fmt.Sprintf(`User status:
- Mood: %s
- Energy: %d/10
- Progress: %d/%d tasks completed

Provide a short, personalized wellness recommendation to help them maintain balance and motivation.`, mood, energy, completed, total)),
		},
		Temperature: openai.Float(0.8),
		MaxTokens:   openai.Int(150),
	})
	if err != nil || len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		if err != nil {
			logger.Warn("wellness recommendation failed", "err", err)
		}
		return fallbackWellnessMessage(mood, energy)
	}
	return completion.Choices[0].Message.Content
}

// parseSchedule extracts the first JSON array from the model output and
// normalizes each item. Models often wrap the array in prose or code
// fences, so the extraction is positional rather than a strict unmarshal.
func parseSchedule(raw string) (models.Schedule, error) {
	open := strings.Index(raw, "[")
	close_ := strings.LastIndex(raw, "]")
	if open < 0 || close_ <= open {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	parsed := gjson.Parse(raw[open : close_+1])
	if !parsed.IsArray() {
		return nil, fmt.Errorf("malformed JSON array in model output")
	}

	var schedule models.Schedule
	for _, item := range parsed.Array() {
		schedule = append(schedule, normalizeItem(item))
	}
	if len(schedule) == 0 {
		return nil, fmt.Errorf("model returned an empty schedule")
	}
	return schedule, nil
}

// normalizeItem fills defaults for anything the model omitted.
func normalizeItem(item gjson.Result) models.ScheduleItem {
	out := models.ScheduleItem{
		ID:          item.Get("id").String(),
		TaskID:      item.Get("taskId").String(),
		StartTime:   item.Get("startTime").String(),
		EndTime:     item.Get("endTime").String(),
		Type:        models.ItemType(item.Get("type").String()),
		Title:       item.Get("title").String(),
		Description: item.Get("description").String(),
	}
	if out.ID == "" {
		out.ID = "schedule-" + uuid.NewString()
	}
	if out.StartTime == "" {
		out.StartTime = "9:00 AM"
	}
	if out.EndTime == "" {
		out.EndTime = "10:00 AM"
	}
	switch out.Type {
	case models.ItemWork, models.ItemBreak, models.ItemWellness:
	default:
		out.Type = models.ItemWork
	}
	if out.Title == "" {
		out.Title = "Untitled Task"
	}
	return out
}

func schedulingPrompt(input models.UserInput) string {
	var tasks strings.Builder
	for _, t := range input.Tasks {
		fmt.Fprintf(&tasks, "- %s (%d min, %s priority)\n", t.Name, t.EstimatedTime, t.Priority)
	}

	start12 := to12Hour(input.StartTime)
	end12 := to12Hour(input.EndTime)
	hours := float64(timeutil.Minutes(input.EndTime)-timeutil.Minutes(input.StartTime)) / 60
	if hours < 0 {
		hours = 0
	}

	return fmt.Sprintf(`Create a balanced daily schedule for a user with the following requirements:

**Time Window:** %s to %s (%.1f hours available)
**Current Mood:** %s
**Energy Level:** %d/10

**Tasks to schedule:**
%s
**User Context:**
- Mood: %s (%s)
- Energy: %d/10 (%s)
- Must start at exactly %s
- Must finish by %s

Please create a schedule that:
1. Balances productivity with wellness
2. Includes appropriate breaks and wellness activities
3. Adjusts task timing based on mood and energy
4. Uses the EXACT time window provided (%s - %s)
5. Fits within the available %.1f hours

Focus on creating a sustainable, balanced schedule that promotes both achievement and well-being within their specific time constraints.`,
		start12, end12, hours,
		input.Mood, input.Energy,
		tasks.String(),
		input.Mood, moodDescription(input.Mood),
		input.Energy, energyDescription(input.Energy),
		start12, end12,
		start12, end12, hours)
}

func regenerationPrompt(input models.UserInput, feedback string, prefs models.Preferences) string {
	base := schedulingPrompt(input)

	var adjustments []string
	if prefs.LongerBreaks {
		adjustments = append(adjustments, "- Make breaks longer (20-30 minutes instead of 15)")
	}
	if prefs.ShorterWorkBlocks {
		adjustments = append(adjustments, "- Reduce work session lengths (30-45 minutes max)")
	}
	if prefs.MoreWellnessTime {
		adjustments = append(adjustments, "- Add more wellness activities and self-care time")
	}
	if prefs.DifferentTaskOrder {
		adjustments = append(adjustments, "- Rearrange tasks in a different order")
	}

	var extra strings.Builder
	if fb := strings.TrimSpace(feedback); fb != "" {
		fmt.Fprintf(&extra, "\n**USER FEEDBACK:**\n%q\n\nPlease address this feedback directly in the new schedule.\n", fb)
	}
	if len(adjustments) > 0 {
		fmt.Fprintf(&extra, "\n**REQUIRED ADJUSTMENTS:**\n%s\n", strings.Join(adjustments, "\n"))
	}

	return fmt.Sprintf(`%s

**SCHEDULE REGENERATION REQUEST:**
The user has reviewed their previous schedule and wants changes.
%s
Please create a NEW schedule that specifically addresses their concerns while maintaining balance and staying within the time constraints.`, base, extra.String())
}

func moodDescription(m models.Mood) string {
	switch m {
	case models.MoodEnergized:
		return "high motivation, ready for challenging tasks"
	case models.MoodBalanced:
		return "stable mood, optimal for steady work"
	case models.MoodTired:
		return "low energy, needs more breaks and easier tasks"
	case models.MoodStressed:
		return "anxious, needs calming activities and shorter focus sessions"
	}
	return "steady"
}

func energyDescription(energy int) string {
	switch {
	case energy >= 8:
		return "very high energy, can handle intensive work"
	case energy >= 6:
		return "good energy, productive day ahead"
	case energy >= 4:
		return "moderate energy, needs balanced approach"
	default:
		return "low energy, requires gentle schedule with frequent breaks"
	}
}

func fallbackWellnessMessage(mood models.Mood, energy int) string {
	switch {
	case mood == models.MoodStressed:
		return "Take 5 deep breaths. You're doing great, one step at a time."
	case mood == models.MoodTired:
		return "Consider a short walk or some fresh air to recharge your energy."
	case energy <= 3:
		return "Your body needs rest. Take a proper break and hydrate."
	}
	return "You're making good progress! Keep up the balanced approach."
}

// to12Hour renders a 24-hour clock string in 12-hour form, passing
// through anything it cannot parse.
func to12Hour(s string) string {
	m, err := timeutil.ParseClock(s)
	if err != nil {
		return s
	}
	return timeutil.Format12(m)
}
