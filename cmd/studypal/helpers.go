package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kmatsui/studypal/internal/config"
	"github.com/kmatsui/studypal/internal/engagement"
	"github.com/kmatsui/studypal/internal/notify"
	"github.com/kmatsui/studypal/internal/profile"
	"github.com/kmatsui/studypal/internal/qalog"
	"github.com/kmatsui/studypal/internal/share"
	"github.com/kmatsui/studypal/internal/studyplan"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// app bundles the stores and collaborators every command works with.
type app struct {
	cfg        *config.Config
	profiles   *profile.Store
	log        *qalog.Log
	plans      *studyplan.Engine
	engagement *engagement.Orchestrator
	notifier   notify.Notifier
	sharer     share.Sharer
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	notifier := notify.NewConsoleNotifier()
	sharer := share.NewConsoleSharer(os.Stdout)

	profiles, err := profile.Open(cfg.Data.ProfilePath(), notifier)
	if err != nil {
		return nil, fmt.Errorf("profile.Open() > %w", err)
	}
	log, err := qalog.Open(cfg.Data.QuestionsPath())
	if err != nil {
		return nil, fmt.Errorf("qalog.Open() > %w", err)
	}
	plans, err := studyplan.Open(cfg.Data.PlansPath())
	if err != nil {
		return nil, fmt.Errorf("studyplan.Open() > %w", err)
	}

	orchestrator := engagement.New(profiles, log, notifier, sharer,
		engagement.WithReminderHour(cfg.Reminders.Hour))

	return &app{
		cfg:        cfg,
		profiles:   profiles,
		log:        log,
		plans:      plans,
		engagement: orchestrator,
		notifier:   notifier,
		sharer:     sharer,
	}, nil
}

// printEngagementPopups surfaces popups raised during a session and
// dismisses each once shown.
func printEngagementPopups(out io.Writer, orchestrator *engagement.Orchestrator) {
	kinds := []engagement.PopupKind{engagement.PopupBadge, engagement.PopupStreak, engagement.PopupShare}
	for _, kind := range kinds {
		popup, ok := orchestrator.VisiblePopup(kind)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "\n%s\n%s\n", popup.Title, popup.Message)
		orchestrator.Dismiss(kind)
	}
}

// requireProfile returns the current profile or an onboarding hint.
func (a *app) requireProfile() (profile.UserProfile, error) {
	current, ok := a.profiles.Profile()
	if !ok {
		return profile.UserProfile{}, fmt.Errorf("no profile found. Run 'studypal profile init' first")
	}
	return current, nil
}
