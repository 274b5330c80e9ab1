package cli

import "fmt"

// NotifyCmd sends a raw notification through the companion app. Hidden;
// exists for scripting and for testing the notifier wiring.
type NotifyCmd struct {
	Text string `arg:"" help:"Notification text."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	if ctx.Notifier == nil {
		return fmt.Errorf("notifier not configured")
	}
	return ctx.Notifier.Notify(c.Text)
}
