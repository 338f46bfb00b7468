package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInviteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invite",
		Short: "Invite friends and earn bonus points",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if _, err := app.requireProfile(); err != nil {
				return err
			}

			if err := app.engagement.ShareInvite(cmd.Context()); err != nil {
				return fmt.Errorf("engagement.ShareInvite() > %w", err)
			}
			fmt.Println("Thanks for sharing! You've earned 5 bonus points.")
			return nil
		},
	}
}
