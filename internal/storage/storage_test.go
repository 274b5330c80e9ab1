package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"balanceday/internal/models"
)

func setupTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store
}

func samplePlan(userID, date string) models.DailyPlan {
	return models.DailyPlan{
		UserID: userID,
		Date:   date,
		Schedule: models.Schedule{
			{ID: "s1", TaskID: "t1", StartTime: "09:00", EndTime: "10:00", Type: models.ItemWork, Title: "Write report"},
			{ID: "s2", StartTime: "10:00", EndTime: "10:15", Type: models.ItemBreak, Title: "Short Break"},
		},
		BalanceScore: models.BalanceScore{Overall: 42, Productivity: 50, Wellness: 30, Consistency: 100},
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

func runProviderTests(t *testing.T, store Provider) {
	t.Run("settings round trip", func(t *testing.T) {
		_, err := store.GetSettings("default")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound before save, got %v", err)
		}

		settings := models.Settings{
			UserID:               "default",
			DayStart:             "08:30",
			DayEnd:               "18:00",
			Model:                "gpt-4o",
			NotificationsEnabled: true,
		}
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("failed to save settings: %v", err)
		}

		got, err := store.GetSettings("default")
		if err != nil {
			t.Fatalf("failed to get settings: %v", err)
		}
		if got != settings {
			t.Errorf("settings = %+v, want %+v", got, settings)
		}
	})

	t.Run("plan round trip and upsert", func(t *testing.T) {
		plan := samplePlan("default", "2026-08-30")
		if err := store.SavePlan(plan); err != nil {
			t.Fatalf("failed to save plan: %v", err)
		}

		got, err := store.GetPlan("default", "2026-08-30")
		if err != nil {
			t.Fatalf("failed to get plan: %v", err)
		}
		if len(got.Schedule) != 2 || got.Schedule[0].Title != "Write report" {
			t.Errorf("schedule = %+v", got.Schedule)
		}
		if got.BalanceScore.Overall != 42 {
			t.Errorf("overall score = %d, want 42", got.BalanceScore.Overall)
		}

		// Saving the same date again replaces the plan.
		plan.CompletedTasks = []string{"t1"}
		if err := store.SavePlan(plan); err != nil {
			t.Fatalf("failed to resave plan: %v", err)
		}
		got, err = store.GetPlan("default", "2026-08-30")
		if err != nil {
			t.Fatalf("failed to reload plan: %v", err)
		}
		if len(got.CompletedTasks) != 1 {
			t.Errorf("completed tasks = %v, want one entry", got.CompletedTasks)
		}

		if _, err := store.GetPlan("default", "2026-01-01"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for a missing date, got %v", err)
		}
	})

	t.Run("recent plans newest first", func(t *testing.T) {
		for _, date := range []string{"2026-08-25", "2026-08-27", "2026-08-26"} {
			if err := store.SavePlan(samplePlan("default", date)); err != nil {
				t.Fatalf("failed to save plan for %s: %v", date, err)
			}
		}
		if err := store.SavePlan(samplePlan("someone-else", "2026-08-28")); err != nil {
			t.Fatalf("failed to save other user's plan: %v", err)
		}

		plans, err := store.RecentPlans("default", 2)
		if err != nil {
			t.Fatalf("failed to list recent plans: %v", err)
		}
		if len(plans) != 2 {
			t.Fatalf("got %d plans, want 2", len(plans))
		}
		if plans[0].Date < plans[1].Date {
			t.Errorf("plans not newest first: %s before %s", plans[0].Date, plans[1].Date)
		}
		for _, p := range plans {
			if p.UserID != "default" {
				t.Errorf("plan for wrong user: %s", p.UserID)
			}
		}
	})

	t.Run("stats default to level one", func(t *testing.T) {
		got, err := store.GetStats("fresh-user")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for fresh stats, got %v", err)
		}
		if got.Level != 1 {
			t.Errorf("fresh stats level = %d, want 1", got.Level)
		}
	})

	t.Run("stats round trip with actions", func(t *testing.T) {
		when := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
		stats := models.GameStats{
			TotalPoints:   45,
			CurrentStreak: 2,
			LongestStreak: 4,
			Level:         1,
			Achievements: []models.Achievement{
				{ID: "first-complete", Title: "Getting Started", UnlockedAt: &when},
			},
		}
		if err := store.SaveStats("default", stats); err != nil {
			t.Fatalf("failed to save stats: %v", err)
		}

		if err := store.AppendAction("default", models.TaskAction{
			Type: models.ActionComplete, TaskID: "t1", Timestamp: when, Points: 15,
		}); err != nil {
			t.Fatalf("failed to append action: %v", err)
		}

		got, err := store.GetStats("default")
		if err != nil {
			t.Fatalf("failed to get stats: %v", err)
		}
		if got.TotalPoints != 45 || got.CurrentStreak != 2 {
			t.Errorf("stats = %+v", got)
		}
		if len(got.TaskActions) != 1 || got.TaskActions[0].Points != 15 {
			t.Errorf("actions = %+v, want the appended completion", got.TaskActions)
		}
		if len(got.Achievements) != 1 || got.Achievements[0].UnlockedAt == nil {
			t.Errorf("achievements = %+v", got.Achievements)
		}
	})
}

func TestSQLiteStore(t *testing.T) {
	runProviderTests(t, setupTestSQLiteStore(t))
}

func TestJSONStore(t *testing.T) {
	runProviderTests(t, setupTestJSONStore(t))
}

func TestJSONStore_LoadRequiresInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected an error loading an uninitialized store")
	}
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	if err := NewJSONStore(path).Init(); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("expected an error initializing over an existing store")
	}
}

func TestJSONStore_PersistsAcrossLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")
	first := NewJSONStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := first.SavePlan(samplePlan("default", "2026-08-30")); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	plan, err := second.GetPlan("default", "2026-08-30")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(plan.Schedule) != 2 {
		t.Errorf("schedule = %+v", plan.Schedule)
	}
}
