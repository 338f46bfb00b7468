package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kmatsui/studypal/internal/catalog"
	"github.com/kmatsui/studypal/internal/qalog"
	"github.com/kmatsui/studypal/internal/tutoring"
)

func newQuestionsCommand() *cobra.Command {
	questionsCommand := &cobra.Command{
		Use:   "questions",
		Short: "List asked questions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			questions := app.log.Questions()
			if len(questions) == 0 {
				fmt.Println("No questions asked yet. Run 'studypal ask' to get started.")
				return nil
			}
			for _, question := range questions {
				mark := " "
				if question.Answered {
					mark = "✓"
				}
				asked := time.UnixMilli(question.Timestamp).Format("2006-01-02 15:04")
				fmt.Printf("[%s] %s  %s  %s  %s\n", mark, question.ID, asked, catalog.SubjectName(question.Subject), question.Text)
			}
			return nil
		},
	}

	questionsCommand.AddCommand(newQuestionsShowCommand())
	questionsCommand.AddCommand(newQuestionsShareCommand())
	return questionsCommand
}

func newQuestionsShareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "share <questionID>",
		Short: "Share a question you got help with and earn bonus points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if _, err := app.requireProfile(); err != nil {
				return err
			}

			if err := app.engagement.ShareQuestion(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("engagement.ShareQuestion() > %w", err)
			}
			fmt.Println("Thanks for sharing! You've earned 3 bonus points.")
			return nil
		},
	}
}

func newQuestionsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <questionID>",
		Short: "Show a question thread in chronological order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}

			question, ok := app.log.Question(args[0])
			if !ok {
				return fmt.Errorf("unknown question %s", args[0])
			}

			bold := color.New(color.Bold)
			bold.Printf("%s (%s)\n\n", question.Text, catalog.SubjectName(question.Subject))

			for _, message := range app.log.MessagesFor(question.ID) {
				at := time.UnixMilli(message.Timestamp).Format("15:04")
				switch message.Role {
				case qalog.RoleUser:
					bold.Printf("You [%s]:\n", at)
				case qalog.RoleAssistant:
					bold.Printf("Tutor [%s]:\n", at)
				default:
					continue
				}
				fmt.Printf("%s\n\n", tutoring.Flatten(message))
			}
			return nil
		},
	}
}
