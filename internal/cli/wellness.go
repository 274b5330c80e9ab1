package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"balanceday/internal/constants"
	"balanceday/internal/genai"
	"balanceday/internal/models"
	"balanceday/internal/storage"
	"balanceday/internal/wellness"
)

type WellnessCmd struct {
	Activity bool `help:"Suggest a guided wellness activity and print its steps."`
}

func (c *WellnessCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	plan, err := ctx.Store.GetPlan(defaultUser, now.Format(constants.DateFormat))
	if err == storage.ErrNotFound {
		return fmt.Errorf("no plan for today, run 'balanceday plan' first")
	}
	if err != nil {
		return err
	}

	stats, err := ctx.Store.GetStats(defaultUser)
	if err != nil && err != storage.ErrNotFound {
		return err
	}

	metrics := wellness.Analyze(stats, plan.UserInput)

	fmt.Println(headerStyle.Render("Wellness check"))
	fmt.Printf("Stress:            %s\n", gauge(metrics.StressLevel, true))
	fmt.Printf("Burnout risk:      %s\n", gauge(metrics.BurnoutRisk, true))
	fmt.Printf("Consistency:       %s\n", gauge(metrics.ConsistencyScore, false))
	fmt.Printf("Work-life balance: %s\n", gauge(metrics.WorkLifeBalance, false))

	if intervention := wellness.Intervention(metrics, stats); intervention != nil {
		fmt.Println()
		fmt.Println(wellnessStyle.Render("♥ " + intervention.Message))
	}

	if c.Activity {
		rnd := rand.New(rand.NewSource(now.UnixNano()))
		activity := wellness.SuggestActivity(plan.UserInput, stats, nil, now, rnd)
		if activity == nil {
			fmt.Println()
			fmt.Println("No activity needed right now. Keep going!")
			return nil
		}
		fmt.Println()
		fmt.Println(headerStyle.Render(activity.Title))
		fmt.Println(dimStyle.Render(activity.Description))
		if activity.Duration > 0 {
			fmt.Printf("Takes about %d seconds.\n", activity.Duration)
		}
		for i, step := range activity.Instructions {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
		return nil
	}

	// Ask the AI for a personalized note when the generator is configured.
	if client, ok := ctx.Generator.(*genai.Client); ok {
		reqCtx, cancel := context.WithTimeout(context.Background(), constants.GenerateTimeout)
		defer cancel()
		msg := client.WellnessRecommendation(reqCtx, plan.UserInput.Mood, plan.UserInput.Energy,
			len(plan.CompletedTasks), len(plan.UserInput.Tasks))
		fmt.Println()
		fmt.Println(wellnessStyle.Render(msg))
	} else if len(stats.TaskActions) > 0 {
		rnd := rand.New(rand.NewSource(now.UnixNano()))
		session := sessionMinutes(stats.TaskActions)
		fmt.Println()
		fmt.Println("Try this: " + wellness.SuggestBreakActivity(session, metrics.StressLevel, rnd))
	}

	return nil
}

// gauge renders a ten-cell bar. badHigh marks metrics where a high value
// is the alarming direction.
func gauge(v int, badHigh bool) string {
	bar := ""
	for i := 0; i < 10; i++ {
		if i < v/10 {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	label := fmt.Sprintf("%s %3d", bar, v)
	if (badHigh && v >= 60) || (!badHigh && v <= 30) {
		return warnStyle.Render(label)
	}
	return label
}

func sessionMinutes(actions []models.TaskAction) int {
	if len(actions) == 0 {
		return 0
	}
	return int(actions[len(actions)-1].Timestamp.Sub(actions[0].Timestamp).Minutes())
}
