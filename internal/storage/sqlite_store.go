package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"balanceday/internal/constants"
	"balanceday/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists plans and stats in a single sqlite file. Schedule
// and stats documents are stored as JSON payloads; the relational columns
// carry only the lookup keys, which keeps the schema stable while the
// document shapes evolve.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	user_id TEXT PRIMARY KEY,
	day_start TEXT NOT NULL,
	day_end TEXT NOT NULL,
	model TEXT NOT NULL DEFAULT '',
	notifications_enabled INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS plans (
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (user_id, date)
);

CREATE TABLE IF NOT EXISTS stats (
	user_id TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);
`

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent, so opening an older file upgrades
	// it in place.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings(userID string) (models.Settings, error) {
	row := s.db.QueryRow(`
		SELECT user_id, day_start, day_end, model, notifications_enabled
		FROM settings WHERE user_id = ?`, userID)

	var settings models.Settings
	var notify int
	err := row.Scan(&settings.UserID, &settings.DayStart, &settings.DayEnd, &settings.Model, &notify)
	if err == sql.ErrNoRows {
		return models.Settings{}, ErrNotFound
	}
	if err != nil {
		return models.Settings{}, err
	}
	settings.NotificationsEnabled = notify != 0

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	notify := 0
	if settings.NotificationsEnabled {
		notify = 1
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO settings (user_id, day_start, day_end, model, notifications_enabled)
		VALUES (?, ?, ?, ?, ?)`,
		settings.UserID, settings.DayStart, settings.DayEnd, settings.Model, notify)
	return err
}

func (s *SQLiteStore) SavePlan(plan models.DailyPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO plans (user_id, date, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		plan.UserID, plan.Date, string(payload), plan.CreatedAt, plan.UpdatedAt)
	return err
}

func (s *SQLiteStore) GetPlan(userID, date string) (models.DailyPlan, error) {
	row := s.db.QueryRow("SELECT payload FROM plans WHERE user_id = ? AND date = ?", userID, date)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return models.DailyPlan{}, ErrNotFound
	}
	if err != nil {
		return models.DailyPlan{}, err
	}

	var plan models.DailyPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return models.DailyPlan{}, fmt.Errorf("failed to parse plan: %w", err)
	}

	return plan, nil
}

func (s *SQLiteStore) RecentPlans(userID string, n int) ([]models.DailyPlan, error) {
	rows, err := s.db.Query(`
		SELECT payload FROM plans WHERE user_id = ?
		ORDER BY date DESC LIMIT ?`, userID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.DailyPlan
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var plan models.DailyPlan
		if err := json.Unmarshal([]byte(payload), &plan); err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (s *SQLiteStore) SaveStats(userID string, stats models.GameStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to serialize stats: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO stats (user_id, payload) VALUES (?, ?)`,
		userID, string(payload))
	return err
}

func (s *SQLiteStore) GetStats(userID string) (models.GameStats, error) {
	row := s.db.QueryRow("SELECT payload FROM stats WHERE user_id = ?", userID)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return models.GameStats{Level: 1}, ErrNotFound
	}
	if err != nil {
		return models.GameStats{}, err
	}

	var stats models.GameStats
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return models.GameStats{}, fmt.Errorf("failed to parse stats: %w", err)
	}

	return stats, nil
}

func (s *SQLiteStore) AppendAction(userID string, action models.TaskAction) error {
	stats, err := s.GetStats(userID)
	if err != nil && err != ErrNotFound {
		return err
	}
	stats.TaskActions = append(stats.TaskActions, action)
	return s.SaveStats(userID, stats)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
