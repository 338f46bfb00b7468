package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmatsui/studypal/internal/cli"
	"github.com/kmatsui/studypal/internal/tutoring"
	"github.com/kmatsui/studypal/internal/tutoring/openai"
)

func newAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask",
		Short: "Ask homework questions interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if _, err := app.requireProfile(); err != nil {
				return err
			}

			// Reconcile the streak once at launch, as the app does on its
			// home screen.
			if err := app.profiles.CheckAndUpdateStreak(); err != nil {
				return fmt.Errorf("profiles.CheckAndUpdateStreak() > %w", err)
			}
			if err := app.engagement.AfterStreakUpdate(); err != nil {
				return fmt.Errorf("engagement.AfterStreakUpdate() > %w", err)
			}

			if app.cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable is required")
			}
			fmt.Printf("Using OpenAI provider (model: %s)\n", app.cfg.OpenAI.Model)
			openaiClient := openai.NewClient(app.cfg.OpenAI.APIKey, app.cfg.OpenAI.Model, tutoring.DefaultMaxRetryAttempts)
			defer func() {
				_ = openaiClient.Close()
			}()

			session := cli.NewAskSession(app.profiles, app.log, openaiClient, app.engagement)

			fmt.Println("Interactive ask session started!")
			fmt.Println("Enter a subject and your question. Type 'quit' to exit.")
			fmt.Println()
			if err := session.Run(context.Background()); err != nil {
				return err
			}

			if _, err := app.engagement.CheckAndShowSharePrompt(); err != nil {
				return fmt.Errorf("engagement.CheckAndShowSharePrompt() > %w", err)
			}
			printEngagementPopups(os.Stdout, app.engagement)
			return nil
		},
	}
}
