package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kmatsui/studypal/internal/catalog"
	"github.com/kmatsui/studypal/internal/profile"
)

// SubjectsFlag accepts a comma separated list of known subject ids.
type SubjectsFlag []string

// Set implements pflag.Value.
func (s *SubjectsFlag) Set(v string) error {
	var subjects []string
	for _, id := range strings.Split(v, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := catalog.SubjectByID(id); !ok {
			return fmt.Errorf("invalid subject %q, valid subjects are %s", id, strings.Join(catalog.SubjectIDs(), ", "))
		}
		subjects = append(subjects, id)
	}
	*s = subjects
	return nil
}

// String implements pflag.Value.
func (s *SubjectsFlag) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

// Type implements pflag.Value.
func (s *SubjectsFlag) Type() string {
	return "SubjectsFlag"
}

var (
	_ pflag.Value = (*SubjectsFlag)(nil)
)

type onboardingInput struct {
	Name     string   `validate:"required"`
	Age      int      `validate:"min=5,max=19"`
	Grade    int      `validate:"min=1,max=12"`
	Subjects []string `validate:"min=1"`
}

func newProfileCommand() *cobra.Command {
	profileCommand := &cobra.Command{
		Use:   "profile",
		Short: "Manage the student profile",
	}

	profileCommand.AddCommand(newProfileInitCommand())
	profileCommand.AddCommand(newProfileShowCommand())

	return profileCommand
}

func newProfileInitCommand() *cobra.Command {
	var (
		name     string
		age      int
		grade    int
		subjects SubjectsFlag
	)
	command := &cobra.Command{
		Use:   "init",
		Short: "Create the student profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := onboardingInput{
				Name:     name,
				Age:      age,
				Grade:    grade,
				Subjects: subjects,
			}
			if err := validator.New().Struct(input); err != nil {
				return fmt.Errorf("invalid profile: %w", err)
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.profiles.SetProfile(profile.UserProfile{
				Name:     input.Name,
				Age:      input.Age,
				Grade:    input.Grade,
				Subjects: input.Subjects,
			}); err != nil {
				return fmt.Errorf("profiles.SetProfile() > %w", err)
			}
			if err := app.profiles.SetOnboarded(true); err != nil {
				return fmt.Errorf("profiles.SetOnboarded() > %w", err)
			}

			fmt.Printf("Profile created for %s. Happy studying!\n", input.Name)
			return nil
		},
	}
	command.Flags().StringVar(&name, "name", "", "student name")
	command.Flags().IntVar(&age, "age", 0, "student age")
	command.Flags().IntVar(&grade, "grade", 0, "school grade (1-12)")
	command.Flags().Var(&subjects, "subjects", "comma separated subject ids")
	return command
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the student profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			current, err := app.requireProfile()
			if err != nil {
				return err
			}

			fmt.Printf("Name: %s\n", current.Name)
			fmt.Printf("Age: %d\n", current.Age)
			fmt.Printf("Grade: %d\n", current.Grade)

			names := make([]string, 0, len(current.Subjects))
			for _, id := range current.Subjects {
				names = append(names, catalog.SubjectName(id))
			}
			fmt.Printf("Subjects: %s\n", strings.Join(names, ", "))
			fmt.Printf("Points: %d\n", current.Points)
			fmt.Printf("Streak: %d days\n", current.Streak)

			fmt.Println("Badges:")
			if len(current.Badges) == 0 {
				fmt.Println("  (none yet)")
			}
			for _, badgeID := range current.Badges {
				if badge, ok := catalog.BadgeByID(badgeID); ok {
					fmt.Printf("  %s: %s\n", badge.Name, badge.Description)
				}
			}
			return nil
		},
	}
}
