package cli

import (
	"fmt"

	"balanceday/internal/constants"
	"balanceday/internal/models"
)

type InitCmd struct{}

// Run creates the storage file and seeds default settings, so `plan` works
// immediately afterwards.
func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(models.Settings{
		UserID:   defaultUser,
		DayStart: constants.DefaultDayStart,
		DayEnd:   constants.DefaultDayEnd,
		Model:    constants.DefaultModel,
	}); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	fmt.Printf("Initialized balanceday storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("Day window %s-%s; change it with `%s config`.\n",
		constants.DefaultDayStart, constants.DefaultDayEnd, constants.AppName)
	return nil
}
