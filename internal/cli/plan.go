package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"balanceday/internal/balance"
	"balanceday/internal/constants"
	"balanceday/internal/genai"
	"balanceday/internal/logger"
	"balanceday/internal/models"
	"balanceday/internal/notifier"
)

type PlanCmd struct {
	Task   []string `short:"t" required:"" help:"Task as name:minutes[:priority]. Repeatable."`
	Start  string   `help:"Day start (HH:MM). Defaults to settings."`
	End    string   `help:"Day end (HH:MM). Defaults to settings."`
	Mood   string   `help:"Current mood: energized, balanced, tired, stressed." default:"balanced"`
	Energy int      `help:"Energy level 1-10." default:"5"`

	Feedback           string `help:"Feedback on the previous schedule, triggers regeneration."`
	LongerBreaks       bool   `help:"Prefer longer breaks when regenerating."`
	ShorterWorkBlocks  bool   `help:"Prefer shorter work blocks when regenerating."`
	MoreWellnessTime   bool   `help:"Prefer more wellness time when regenerating."`
	DifferentTaskOrder bool   `help:"Prefer a different task order when regenerating."`

	Local bool `help:"Skip the AI generator and use the rule-based scheduler."`
	Yes   bool `short:"y" help:"Replace an existing plan without asking."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.loadSettings()
	if err != nil {
		return err
	}
	if client, ok := ctx.Generator.(*genai.Client); ok {
		ctx.Generator = client.WithModel(settings.Model)
	}

	mood, err := parseMood(c.Mood)
	if err != nil {
		return err
	}
	if c.Energy < 1 || c.Energy > 10 {
		return fmt.Errorf("energy must be between 1 and 10")
	}

	input := models.UserInput{
		StartTime: c.Start,
		EndTime:   c.End,
		Mood:      mood,
		Energy:    c.Energy,
	}
	if input.StartTime == "" {
		input.StartTime = settings.DayStart
	}
	if input.EndTime == "" {
		input.EndTime = settings.DayEnd
	}
	for _, spec := range c.Task {
		task, err := parseTaskSpec(spec)
		if err != nil {
			return err
		}
		input.Tasks = append(input.Tasks, task)
	}

	date := time.Now().Format(constants.DateFormat)
	if existing, err := ctx.Store.GetPlan(defaultUser, date); err == nil && len(existing.Schedule) > 0 && !c.Yes {
		fmt.Printf("A plan already exists for %s. Generating a new plan will replace it.\n", date)
		fmt.Print("Continue? [y/N]: ")
		if !confirm() {
			fmt.Println("Plan generation cancelled.")
			return nil
		}
		fmt.Println()
	}

	schedule, dropped, err := c.generate(ctx, input)
	if err != nil {
		return err
	}
	if len(schedule) == 0 {
		return fmt.Errorf("could not fit any task into the %s - %s window", input.StartTime, input.EndTime)
	}

	score := balance.Score(schedule, nil, nil, nil)

	now := time.Now().Format(time.RFC3339)
	plan := models.DailyPlan{
		UserID:       defaultUser,
		Date:         date,
		Schedule:     schedule,
		UserInput:    input,
		BalanceScore: score,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ctx.Store.SavePlan(plan); err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Plan for %s", date)))
	fmt.Println()
	renderSchedule(schedule, plan)
	fmt.Println()
	renderScore(score)
	for _, name := range dropped {
		fmt.Println(warnStyle.Render(fmt.Sprintf("  ! %q did not fit and was left out", name)))
	}

	if settings.NotificationsEnabled {
		ctx.notify(notifier.ScheduleSummary(schedule))
	}

	return nil
}

// generate prefers the AI generator and falls back to the rule-based
// scheduler on any failure. Only the rule-based path reports dropped tasks.
func (c *PlanCmd) generate(ctx *Context, input models.UserInput) (models.Schedule, []string, error) {
	if ctx.Generator != nil && !c.Local {
		reqCtx, cancel := context.WithTimeout(context.Background(), constants.GenerateTimeout)
		defer cancel()

		schedule, err := ctx.Generator.Generate(reqCtx, models.GenerateRequest{
			Input:    input,
			Feedback: c.Feedback,
			Preferences: models.Preferences{
				LongerBreaks:       c.LongerBreaks,
				ShorterWorkBlocks:  c.ShorterWorkBlocks,
				MoreWellnessTime:   c.MoreWellnessTime,
				DifferentTaskOrder: c.DifferentTaskOrder,
			},
		})
		if err == nil {
			return schedule, nil, nil
		}
		logger.Warn("AI generation failed, using rule-based scheduler", "error", err)
		fmt.Println(dimStyle.Render("AI generation unavailable, using local scheduler."))
	}

	result, err := ctx.Scheduler.Generate(input)
	if err != nil {
		return nil, nil, err
	}
	return result.Items, result.Dropped, nil
}

func confirm() bool {
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
