package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"balanceday/internal/constants"
	"balanceday/internal/models"
)

// Store is the on-disk document for the JSON backend. Plans are keyed by
// "userID/date"; settings and stats by userID.
type Store struct {
	Version  int                         `json:"version"`
	Settings map[string]models.Settings  `json:"settings"`
	Plans    map[string]models.DailyPlan `json:"plans"`
	Stats    map[string]models.GameStats `json:"stats"`
}

// JSONStore keeps the whole store in one pretty-printed JSON file. It is
// not safe for concurrent use by multiple processes sharing the same path.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: make(map[string]models.Settings),
		Plans:    make(map[string]models.DailyPlan),
		Stats:    make(map[string]models.GameStats),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Older files may omit empty maps.
	if s.store.Settings == nil {
		s.store.Settings = make(map[string]models.Settings)
	}
	if s.store.Plans == nil {
		s.store.Plans = make(map[string]models.DailyPlan)
	}
	if s.store.Stats == nil {
		s.store.Stats = make(map[string]models.GameStats)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings(userID string) (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	settings, ok := s.store.Settings[userID]
	if !ok {
		return models.Settings{}, ErrNotFound
	}
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Settings[settings.UserID] = settings
	return s.save()
}

func planKey(userID, date string) string {
	return userID + "/" + date
}

func (s *JSONStore) SavePlan(plan models.DailyPlan) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Plans[planKey(plan.UserID, plan.Date)] = plan
	return s.save()
}

func (s *JSONStore) GetPlan(userID, date string) (models.DailyPlan, error) {
	if err := s.loaded(); err != nil {
		return models.DailyPlan{}, err
	}
	plan, ok := s.store.Plans[planKey(userID, date)]
	if !ok {
		return models.DailyPlan{}, ErrNotFound
	}
	return plan, nil
}

func (s *JSONStore) RecentPlans(userID string, n int) ([]models.DailyPlan, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var plans []models.DailyPlan
	for _, plan := range s.store.Plans {
		if plan.UserID == userID {
			plans = append(plans, plan)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Date > plans[j].Date
	})
	if len(plans) > n {
		plans = plans[:n]
	}
	return plans, nil
}

func (s *JSONStore) SaveStats(userID string, stats models.GameStats) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Stats[userID] = stats
	return s.save()
}

func (s *JSONStore) GetStats(userID string) (models.GameStats, error) {
	if err := s.loaded(); err != nil {
		return models.GameStats{}, err
	}
	stats, ok := s.store.Stats[userID]
	if !ok {
		return models.GameStats{Level: 1}, ErrNotFound
	}
	return stats, nil
}

func (s *JSONStore) AppendAction(userID string, action models.TaskAction) error {
	if err := s.loaded(); err != nil {
		return err
	}
	stats := s.store.Stats[userID]
	stats.TaskActions = append(stats.TaskActions, action)
	s.store.Stats[userID] = stats
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
