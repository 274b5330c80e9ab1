package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Mood string

const (
	MoodEnergized Mood = "energized"
	MoodBalanced  Mood = "balanced"
	MoodTired     Mood = "tired"
	MoodStressed  Mood = "stressed"
)

type ItemType string

const (
	ItemWork     ItemType = "work"
	ItemBreak    ItemType = "break"
	ItemWellness ItemType = "wellness"
)

type ActionType string

const (
	ActionComplete   ActionType = "complete"
	ActionSkip       ActionType = "skip"
	ActionReschedule ActionType = "reschedule"
)

// Task is a unit of user-intended work. Immutable once scheduled except for
// estimated-time adjustments during rescheduling.
type Task struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Priority      Priority `json:"priority"`
	EstimatedTime int      `json:"estimatedTime"` // minutes
	Completed     bool     `json:"completed"`
}

// UserInput is the planning request for one session. Treated as an immutable
// snapshot; regeneration produces a new UserInput.
type UserInput struct {
	Tasks     []Task `json:"tasks"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	Mood      Mood   `json:"mood"`
	Energy    int    `json:"energy"` // 1-10
}

// ScheduleItem is one scheduled time block. TaskID is empty for break and
// wellness items, which are addressable by their own ID instead.
type ScheduleItem struct {
	ID          string   `json:"id"`
	TaskID      string   `json:"taskId"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Type        ItemType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
}

// ActionKey returns the identifier used to match this item against action
// sets: the linked task id for work items, the item's own id otherwise.
func (s ScheduleItem) ActionKey() string {
	if s.TaskID != "" {
		return s.TaskID
	}
	return s.ID
}

// Schedule is an ordered sequence of items, sorted by start time.
type Schedule []ScheduleItem

// WorkItems returns the task-linked blocks.
func (s Schedule) WorkItems() []ScheduleItem {
	var out []ScheduleItem
	for _, item := range s {
		if item.Type == ItemWork {
			out = append(out, item)
		}
	}
	return out
}

// WellnessItems returns the system-inserted recovery blocks (break + wellness).
func (s Schedule) WellnessItems() []ScheduleItem {
	var out []ScheduleItem
	for _, item := range s {
		if item.Type == ItemBreak || item.Type == ItemWellness {
			out = append(out, item)
		}
	}
	return out
}

// BalanceScore is derived and recomputed, never stored authoritatively.
// All four components are in [0,100].
type BalanceScore struct {
	Overall      int `json:"overall"`
	Productivity int `json:"productivity"`
	Wellness     int `json:"wellness"`
	Consistency  int `json:"consistency"`
}

// TaskAction is one entry of the append-only action log. Points are computed
// by the gamification engine, never user-supplied.
type TaskAction struct {
	Type      ActionType `json:"type"`
	TaskID    string     `json:"taskId"`
	Timestamp time.Time  `json:"timestamp"`
	Points    int        `json:"points"`
	Reason    string     `json:"reason,omitempty"`
}

type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// GameStats is the accumulated per-session gamification state.
type GameStats struct {
	TotalPoints   int           `json:"totalPoints"`
	CurrentStreak int           `json:"currentStreak"`
	LongestStreak int           `json:"longestStreak"`
	Level         int           `json:"level"`
	Achievements  []Achievement `json:"achievements"`
	TaskActions   []TaskAction  `json:"taskActions"`
}

// HasAchievement reports whether the achievement id has already been unlocked.
func (g GameStats) HasAchievement(id string) bool {
	for _, a := range g.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// ActionCount returns the number of logged actions of the given type.
func (g GameStats) ActionCount(t ActionType) int {
	n := 0
	for _, a := range g.TaskActions {
		if a.Type == t {
			n++
		}
	}
	return n
}

type SuggestionType string

const (
	SuggestMotivation   SuggestionType = "motivation"
	SuggestAdjustment   SuggestionType = "adjustment"
	SuggestWellness     SuggestionType = "wellness"
	SuggestProductivity SuggestionType = "productivity"
)

// ActionSuggestion is an optional machine-actionable hint attached to a
// Suggestion (split a task, take a break, ...).
type ActionSuggestion struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// Suggestion is an advisory, non-blocking message from the engine side
// channels. Callers may silently drop it.
type Suggestion struct {
	ID      string            `json:"id"`
	Message string            `json:"message"`
	Type    SuggestionType    `json:"type"`
	Action  *ActionSuggestion `json:"actionSuggestion,omitempty"`
}

// Preferences are regeneration hints passed to the AI schedule generator.
type Preferences struct {
	LongerBreaks       bool `json:"longerBreaks,omitempty"`
	ShorterWorkBlocks  bool `json:"shorterWorkBlocks,omitempty"`
	MoreWellnessTime   bool `json:"moreWellnessTime,omitempty"`
	DifferentTaskOrder bool `json:"differentTaskOrder,omitempty"`
}

// GenerateRequest is the input to the AI schedule generator boundary.
type GenerateRequest struct {
	Input       UserInput   `json:"input"`
	Feedback    string      `json:"feedback,omitempty"`
	Preferences Preferences `json:"preferences,omitempty"`
}

// DailyPlan is the persisted session document, keyed by (UserID, Date).
type DailyPlan struct {
	UserID             string       `json:"userId"`
	Date               string       `json:"date"` // YYYY-MM-DD
	Schedule           Schedule     `json:"schedule"`
	UserInput          UserInput    `json:"userInput"`
	BalanceScore       BalanceScore `json:"balanceScore"`
	CompletedTasks     []string     `json:"completedTasks"`
	SkippedTasks       []string     `json:"skippedTasks"`
	RescheduledTasks   []string     `json:"rescheduledTasks"`
	WellnessActivities int          `json:"wellnessActivities"`
	CreatedAt          string       `json:"createdAt"`
	UpdatedAt          string       `json:"updatedAt"`
}

// Settings holds per-installation configuration.
type Settings struct {
	UserID               string `json:"user_id"`
	DayStart             string `json:"day_start"` // HH:MM
	DayEnd               string `json:"day_end"`   // HH:MM
	Model                string `json:"model"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}
