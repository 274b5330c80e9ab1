package storage

import (
	"errors"

	"balanceday/internal/models"
)

// ErrNotFound is returned when a requested plan, stats record, or settings
// entry does not exist. Callers distinguish it from IO failures.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings(userID string) (models.Settings, error)
	SaveSettings(models.Settings) error

	// Plans, keyed by (userID, date) with date in YYYY-MM-DD form
	SavePlan(models.DailyPlan) error
	GetPlan(userID, date string) (models.DailyPlan, error)
	RecentPlans(userID string, n int) ([]models.DailyPlan, error)

	// Gamification
	SaveStats(userID string, stats models.GameStats) error
	GetStats(userID string) (models.GameStats, error)
	AppendAction(userID string, action models.TaskAction) error

	// Utils
	GetConfigPath() string
}
