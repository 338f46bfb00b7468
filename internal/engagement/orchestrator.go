// Package engagement decides when to nudge the student: share prompts,
// achievement and streak popups, badge awards and the daily streak
// reminder.
package engagement

import (
	"context"
	"fmt"
	"time"

	"github.com/kmatsui/studypal/internal/catalog"
	"github.com/kmatsui/studypal/internal/notify"
	"github.com/kmatsui/studypal/internal/profile"
	"github.com/kmatsui/studypal/internal/qalog"
	"github.com/kmatsui/studypal/internal/share"
)

const (
	// ShareURL is the public landing page used by every share flow.
	ShareURL = "https://aihomeworkhelper.app"

	shareBonusPoints         = 5
	questionShareBonusPoints = 3

	minQuestionsForSharePrompt = 5
	minBadgesForSharePrompt    = 2
	minStreakForSharePrompt    = 3
	sharePromptCooldownDays    = 7

	// DefaultReminderHour is 8 PM local time.
	DefaultReminderHour = 20
)

// streakPopupMilestones are the streak lengths worth celebrating with a
// popup. Notification milestones are a separate, smaller set owned by the
// profile store.
var streakPopupMilestones = []int{3, 7, 14, 30, 60, 90, 180, 365}

// badge award thresholds, checked against the question log and profile.
const (
	questionsForFiveBadge = 5
	questionsForTenBadge  = 10
	subjectCountForBadge  = 5
	imageCountForBadge    = 3
	streakForLearnerBadge = 5
)

// PopupKind distinguishes the three popup surfaces. At most one popup of
// each kind is visible at a time.
type PopupKind string

const (
	PopupShare  PopupKind = "share"
	PopupBadge  PopupKind = "badge"
	PopupStreak PopupKind = "streak"
)

// Popup is a visible in-app prompt.
type Popup struct {
	Kind    PopupKind
	Title   string
	Message string
	BadgeID string
	Streak  int
}

// Orchestrator wires the profile store, the question log and the outward
// collaborators into engagement decisions. Popup state is in-memory only.
type Orchestrator struct {
	profiles     *profile.Store
	log          *qalog.Log
	notifier     notify.Notifier
	sharer       share.Sharer
	reminderHour int
	now          func() time.Time
	visible      map[PopupKind]Popup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the orchestrator's time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithReminderHour moves the daily streak reminder away from the default
// 8 PM.
func WithReminderHour(hour int) Option {
	return func(o *Orchestrator) {
		o.reminderHour = hour
	}
}

func New(profiles *profile.Store, log *qalog.Log, notifier notify.Notifier, sharer share.Sharer, opts ...Option) *Orchestrator {
	orchestrator := &Orchestrator{
		profiles:     profiles,
		log:          log,
		notifier:     notifier,
		sharer:       sharer,
		reminderHour: DefaultReminderHour,
		now:          time.Now,
		visible:      map[PopupKind]Popup{},
	}
	for _, opt := range opts {
		opt(orchestrator)
	}
	return orchestrator
}

// VisiblePopup returns the currently visible popup of the given kind.
func (o *Orchestrator) VisiblePopup(kind PopupKind) (Popup, bool) {
	popup, ok := o.visible[kind]
	return popup, ok
}

// Dismiss hides the popup of the given kind.
func (o *Orchestrator) Dismiss(kind PopupKind) {
	delete(o.visible, kind)
}

// show makes the popup visible unless one of its kind already is.
func (o *Orchestrator) show(popup Popup) bool {
	if _, ok := o.visible[popup.Kind]; ok {
		return false
	}
	o.visible[popup.Kind] = popup
	return true
}

// ShowBadgeAchievement surfaces the achievement popup for a badge.
func (o *Orchestrator) ShowBadgeAchievement(badgeID string) bool {
	badge, ok := catalog.BadgeByID(badgeID)
	if !ok {
		return false
	}
	return o.show(Popup{
		Kind:    PopupBadge,
		Title:   "Achievement Unlocked!",
		Message: fmt.Sprintf("You've earned the %s badge. %s", badge.Name, badge.Description),
		BadgeID: badgeID,
	})
}

// ShowStreakMilestone surfaces the streak popup when the streak sits on a
// celebrated milestone.
func (o *Orchestrator) ShowStreakMilestone(streak int) bool {
	celebrated := false
	for _, milestone := range streakPopupMilestones {
		if streak == milestone {
			celebrated = true
			break
		}
	}
	if !celebrated {
		return false
	}
	return o.show(Popup{
		Kind:    PopupStreak,
		Title:   fmt.Sprintf("%d Day Streak!", streak),
		Message: fmt.Sprintf("You've studied %d days in a row. Keep the momentum going!", streak),
		Streak:  streak,
	})
}

// CheckAndShowSharePrompt surfaces the share popup when the student has
// asked at least 5 questions, earned at least 2 badges, holds a streak of
// at least 3 days and has not been prompted within the last 7 days.
// Showing the prompt stamps today as the last prompt date.
func (o *Orchestrator) CheckAndShowSharePrompt() (bool, error) {
	current, ok := o.profiles.Profile()
	if !ok {
		return false, nil
	}

	if o.log.QuestionCount() < minQuestionsForSharePrompt {
		return false, nil
	}
	if len(current.Badges) < minBadgesForSharePrompt {
		return false, nil
	}
	if current.Streak < minStreakForSharePrompt {
		return false, nil
	}
	if !o.sharePromptCooledDown() {
		return false, nil
	}

	shown := o.show(Popup{
		Kind:    PopupShare,
		Title:   "Help Your Friends Succeed!",
		Message: "Share AI Homework Helper with your friends and classmates so they can get help with their homework too. Learning is better together!",
	})
	if !shown {
		return false, nil
	}
	if err := o.profiles.SetLastSharePrompt(o.profiles.Today()); err != nil {
		return false, fmt.Errorf("profiles.SetLastSharePrompt() > %w", err)
	}
	return true, nil
}

func (o *Orchestrator) sharePromptCooledDown() bool {
	last := o.profiles.LastSharePrompt()
	if last == "" {
		return true
	}
	lastDay, err := time.Parse(profile.DateLayout, last)
	if err != nil {
		return true
	}
	// Compare calendar dates, not instants, so the window does not stretch
	// with the local UTC offset.
	today, _ := time.Parse(profile.DateLayout, o.now().Format(profile.DateLayout))
	return today.Sub(lastDay) >= sharePromptCooldownDays*24*time.Hour
}

// ScheduleStreakReminder schedules the daily streak reminder for the
// reminder hour, rolling over to tomorrow when that hour has already
// passed. Without a profile there is nothing to remind about.
func (o *Orchestrator) ScheduleStreakReminder(ctx context.Context) error {
	current, ok := o.profiles.Profile()
	if !ok {
		return nil
	}

	now := o.now()
	at := time.Date(now.Year(), now.Month(), now.Day(), o.reminderHour, 0, 0, 0, now.Location())
	if now.After(at) {
		at = at.AddDate(0, 0, 1)
	}

	notification := notify.Notification{
		Title:   "Don't Break Your Streak!",
		Body:    fmt.Sprintf("You're on a %d day streak! Take a moment to learn something new today.", current.Streak),
		Trigger: notify.At(at),
	}
	if err := o.notifier.Schedule(ctx, notification); err != nil {
		return fmt.Errorf("notifier.Schedule() > %w", err)
	}
	return nil
}

// ShareInvite runs the invite-a-friend flow. A successful share pays the
// share bonus.
func (o *Orchestrator) ShareInvite(ctx context.Context) error {
	content := share.Content{
		Title:   "Join me on AI Homework Helper!",
		Message: "Hey! I've been using AI Homework Helper for my studies and it's been super helpful. It's like having a personal tutor 24/7! Check it out:",
		URL:     ShareURL,
	}
	if err := o.sharer.Share(ctx, content); err != nil {
		return fmt.Errorf("sharer.Share() > %w", err)
	}
	return o.HandleSuccessfulShare()
}

// ShareQuestion shares a question the student got help with, with a
// subject-specific message. A successful share pays a smaller bonus than
// the invite flow.
func (o *Orchestrator) ShareQuestion(ctx context.Context, questionID string) error {
	question, ok := o.log.Question(questionID)
	if !ok {
		return fmt.Errorf("unknown question %s", questionID)
	}

	subject := "homework"
	if known, ok := catalog.SubjectByID(question.Subject); ok {
		subject = known.Name
	}
	content := share.Content{
		Title:   "I got help with my homework!",
		Message: fmt.Sprintf("I just got help with my %s question on AI Homework Helper! Check it out:", subject),
		URL:     ShareURL,
	}
	if err := o.sharer.Share(ctx, content); err != nil {
		return fmt.Errorf("sharer.Share() > %w", err)
	}
	if err := o.profiles.AddPoints(questionShareBonusPoints); err != nil {
		return fmt.Errorf("profiles.AddPoints() > %w", err)
	}
	return nil
}

// HandleSuccessfulShare pays the share bonus after any completed share.
func (o *Orchestrator) HandleSuccessfulShare() error {
	if err := o.profiles.AddPoints(shareBonusPoints); err != nil {
		return fmt.Errorf("profiles.AddPoints() > %w", err)
	}
	return nil
}

// AfterQuestionAsked applies the badge rules that depend on asked
// questions.
func (o *Orchestrator) AfterQuestionAsked() error {
	if o.log.QuestionCount() >= questionsForFiveBadge {
		if err := o.award(catalog.BadgeFiveQuestions); err != nil {
			return err
		}
	}
	if o.log.QuestionCount() >= questionsForTenBadge {
		if err := o.award(catalog.BadgeTenQuestions); err != nil {
			return err
		}
	}
	if o.log.CountBySubject("science", false) >= subjectCountForBadge {
		if err := o.award(catalog.BadgeScienceExplorer); err != nil {
			return err
		}
	}
	if o.log.ImageQuestionCount() >= imageCountForBadge {
		if err := o.award(catalog.BadgePhotoMaster); err != nil {
			return err
		}
	}
	return nil
}

// AfterQuestionAnswered applies the badge rules that depend on answered
// questions.
func (o *Orchestrator) AfterQuestionAnswered() error {
	if o.log.AnsweredCount() >= 1 {
		if err := o.award(catalog.BadgeFirstQuestion); err != nil {
			return err
		}
	}
	if o.log.CountBySubject("math", true) >= subjectCountForBadge {
		if err := o.award(catalog.BadgeMathExpert); err != nil {
			return err
		}
	}
	return nil
}

// AfterStreakUpdate applies the streak badge rule and surfaces the streak
// popup on milestones.
func (o *Orchestrator) AfterStreakUpdate() error {
	current, ok := o.profiles.Profile()
	if !ok {
		return nil
	}
	if current.Streak >= streakForLearnerBadge {
		if err := o.award(catalog.BadgeConsistentLearner); err != nil {
			return err
		}
	}
	o.ShowStreakMilestone(current.Streak)
	return nil
}

// award grants a badge through the profile store and surfaces the
// achievement popup when the badge is new.
func (o *Orchestrator) award(badgeID string) error {
	current, ok := o.profiles.Profile()
	if !ok || current.HasBadge(badgeID) {
		return nil
	}
	if err := o.profiles.AddBadge(badgeID); err != nil {
		return fmt.Errorf("profiles.AddBadge(%s) > %w", badgeID, err)
	}
	o.ShowBadgeAchievement(badgeID)
	return nil
}
