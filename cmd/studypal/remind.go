package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Schedule the daily streak reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if _, err := app.requireProfile(); err != nil {
				return err
			}

			if err := app.engagement.ScheduleStreakReminder(cmd.Context()); err != nil {
				return fmt.Errorf("engagement.ScheduleStreakReminder() > %w", err)
			}
			fmt.Printf("Streak reminder scheduled for %d:00.\n", app.cfg.Reminders.Hour)
			return nil
		},
	}
}
