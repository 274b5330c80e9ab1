package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"balanceday/internal/constants"
	"balanceday/internal/logger"
	"balanceday/internal/models"
	"balanceday/internal/notifier"
	"balanceday/internal/scheduler"
	"balanceday/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Generator scheduler.Generator
	Notifier  *notifier.Notifier
}

// loadSettings fetches settings, creating defaults on first use so every
// command works right after init.
func (ctx *Context) loadSettings() (models.Settings, error) {
	settings, err := ctx.Store.GetSettings(defaultUser)
	if err == storage.ErrNotFound {
		settings = models.Settings{
			UserID:   defaultUser,
			DayStart: constants.DefaultDayStart,
			DayEnd:   constants.DefaultDayEnd,
			Model:    constants.DefaultModel,
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return models.Settings{}, fmt.Errorf("failed to save default settings: %w", err)
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// The CLI is single-user; plans and stats are keyed by this id.
const defaultUser = "default"

func (ctx *Context) notify(text string) {
	if ctx.Notifier == nil {
		return
	}
	if err := ctx.Notifier.Notify(text); err != nil {
		logger.Debug("notification skipped", "error", err)
	}
}

// resolveDate turns "today", "yesterday", or YYYY-MM-DD into a date string.
func resolveDate(s string) (string, error) {
	switch s {
	case "", "today":
		return time.Now().Format(constants.DateFormat), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return t.Format(constants.DateFormat), nil
}

// parseTaskSpec parses a "name:minutes[:priority]" task flag.
func parseTaskSpec(spec string) (models.Task, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return models.Task{}, fmt.Errorf("invalid task %q, expected name:minutes[:priority]", spec)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return models.Task{}, fmt.Errorf("invalid task %q: empty name", spec)
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes <= 0 {
		return models.Task{}, fmt.Errorf("invalid task %q: minutes must be a positive number", spec)
	}

	priority := models.PriorityMedium
	if len(parts) == 3 {
		switch p := models.Priority(strings.TrimSpace(strings.ToLower(parts[2]))); p {
		case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
			priority = p
		default:
			return models.Task{}, fmt.Errorf("invalid task %q: priority must be low, medium, or high", spec)
		}
	}

	return models.Task{
		ID:            uuid.NewString(),
		Name:          name,
		Priority:      priority,
		EstimatedTime: minutes,
	}, nil
}

func parseMood(s string) (models.Mood, error) {
	switch m := models.Mood(strings.ToLower(s)); m {
	case models.MoodEnergized, models.MoodBalanced, models.MoodTired, models.MoodStressed:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mood %q, expected energized, balanced, tired, or stressed", s)
	}
}
