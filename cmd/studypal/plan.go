package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kmatsui/studypal/internal/profile"
	"github.com/kmatsui/studypal/internal/studyplan"
)

// DateFlag accepts a calendar date in YYYY-MM-DD form.
type DateFlag string

// Set implements pflag.Value.
func (d *DateFlag) Set(v string) error {
	if _, err := time.Parse(profile.DateLayout, v); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	*d = DateFlag(v)
	return nil
}

// String implements pflag.Value.
func (d *DateFlag) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

// Type implements pflag.Value.
func (d *DateFlag) Type() string {
	return "DateFlag"
}

var (
	_ pflag.Value = (*DateFlag)(nil)
)

func newPlanCommand() *cobra.Command {
	planCommand := &cobra.Command{
		Use:   "plan",
		Short: "Manage daily study plans",
	}

	planCommand.AddCommand(newPlanGenerateCommand())
	planCommand.AddCommand(newPlanShowCommand())
	planCommand.AddCommand(newPlanToggleCommand())

	return planCommand
}

func newPlanGenerateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate today's study plan from the profile subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			current, err := app.requireProfile()
			if err != nil {
				return err
			}

			plan, created, err := app.plans.Generate(current.Subjects)
			if err != nil {
				return fmt.Errorf("plans.Generate() > %w", err)
			}
			if !created {
				if plan.ID == "" {
					fmt.Println("No subjects in the profile, nothing to plan.")
					return nil
				}
				fmt.Println("Today's plan already exists:")
			}
			printPlan(plan)
			return nil
		},
	}
}

func newPlanShowCommand() *cobra.Command {
	var date DateFlag
	command := &cobra.Command{
		Use:   "show",
		Short: "Show the study plan for today or a given date",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			var (
				plan studyplan.StudyPlan
				ok   bool
			)
			if date != "" {
				plan, ok = app.plans.PlanByDate(string(date))
			} else {
				plan, ok = app.plans.TodayPlan()
			}
			if !ok {
				fmt.Println("No plan found. Run 'studypal plan generate' first.")
				return nil
			}
			printPlan(plan)
			return nil
		},
	}
	command.Flags().Var(&date, "date", "plan date (YYYY-MM-DD), defaults to today")
	return command
}

func newPlanToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <taskID>",
		Short: "Toggle a task of today's plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			plan, ok := app.plans.TodayPlan()
			if !ok {
				return fmt.Errorf("no plan for today. Run 'studypal plan generate' first")
			}
			if err := app.plans.ToggleTask(plan.ID, args[0]); err != nil {
				return fmt.Errorf("plans.ToggleTask() > %w", err)
			}

			plan, _ = app.plans.TodayPlan()
			printPlan(plan)
			return nil
		},
	}
}

func printPlan(plan studyplan.StudyPlan) {
	fmt.Printf("Plan for %s\n", plan.Date)
	for _, task := range plan.Tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %s (%s)\n", mark, task.Description, task.ID)
	}
	if plan.Completed {
		fmt.Println("All tasks completed. Great work!")
	}
}
