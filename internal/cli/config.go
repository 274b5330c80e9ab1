package cli

import (
	"fmt"

	"balanceday/internal/timeutil"
)

type ConfigCmd struct {
	DayStart      string `help:"Default day start (HH:MM)."`
	DayEnd        string `help:"Default day end (HH:MM)."`
	Model         string `help:"OpenAI model used for schedule generation."`
	Notifications *bool  `help:"Enable or disable desktop notifications." negatable:""`
}

func (c *ConfigCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}

	changed := false
	if c.DayStart != "" {
		if _, err := timeutil.ParseClock(c.DayStart); err != nil {
			return fmt.Errorf("invalid --day-start: %w", err)
		}
		settings.DayStart = c.DayStart
		changed = true
	}
	if c.DayEnd != "" {
		if _, err := timeutil.ParseClock(c.DayEnd); err != nil {
			return fmt.Errorf("invalid --day-end: %w", err)
		}
		settings.DayEnd = c.DayEnd
		changed = true
	}
	if c.Model != "" {
		settings.Model = c.Model
		changed = true
	}
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
		changed = true
	}

	if changed {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Println("Settings updated.")
	}

	fmt.Printf("Day window:    %s - %s\n", settings.DayStart, settings.DayEnd)
	fmt.Printf("Model:         %s\n", settings.Model)
	fmt.Printf("Notifications: %v\n", settings.NotificationsEnabled)
	return nil
}
