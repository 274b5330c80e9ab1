package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"balanceday/internal/cli"
	"balanceday/internal/constants"
	apperrors "balanceday/internal/errors"
	"balanceday/internal/genai"
	"balanceday/internal/logger"
	"balanceday/internal/notifier"
	"balanceday/internal/scheduler"
	"balanceday/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (.db for sqlite, .json for flat file)." type:"path" default:"~/.config/balanceday/balanceday.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init       cli.InitCmd       `cmd:"" help:"Initialize balanceday storage."`
	Plan       cli.PlanCmd       `cmd:"" help:"Generate a balanced schedule for today."`
	Day        cli.DayCmd        `cmd:"" help:"Show the plan for a day."`
	Complete   cli.CompleteCmd   `cmd:"" help:"Mark a task completed."`
	Skip       cli.SkipCmd       `cmd:"" help:"Skip a task."`
	Reschedule cli.RescheduleCmd `cmd:"" help:"Move a task to a new slot."`
	Stats      cli.StatsCmd      `cmd:"" help:"Show points, level, streaks, and achievements."`
	Wellness   cli.WellnessCmd   `cmd:"" help:"Show wellness metrics and suggestions."`
	History    cli.HistoryCmd    `cmd:"" help:"Show recent days and balance trends."`
	Config_    cli.ConfigCmd     `cmd:"" name:"config" help:"Show or change settings."`
	Notify     cli.NotifyCmd     `cmd:"" hidden:"" help:"Send a raw notification."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Balanced day planner: schedules tasks around your mood and energy"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Storage backend by extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	var gen scheduler.Generator
	if key := os.Getenv(constants.OpenAIKeyEnv); key != "" {
		gen = genai.NewClient(key, "")
	}

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Generator: gen,
		Notifier:  notifier.New(),
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
