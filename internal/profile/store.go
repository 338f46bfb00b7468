package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kmatsui/studypal/internal/notify"
	"github.com/kmatsui/studypal/internal/storage"
)

const (
	// pointMilestone triggers a one-time notification when crossed from below.
	pointMilestone = 50

	// badgeBonusPoints is awarded alongside every new badge.
	badgeBonusPoints = 10

	streakBonusMonthly = 50
	streakBonusWeekly  = 15
	streakBonusDaily   = 1
)

// streakNotificationDelay keeps the streak milestone notification from
// landing on top of the activity that caused it.
const streakNotificationDelay = 2 * time.Second

var streakNotificationMilestones = []int{7, 30, 100}

type document struct {
	Profile         *UserProfile `json:"profile"`
	Onboarded       bool         `json:"isOnboarded"`
	LastSharePrompt string       `json:"lastSharePrompt,omitempty"`
}

// Store owns the profile document. Mutations apply to memory first and are
// then written back to the document; every mutation with no profile present
// is a silent no-op.
type Store struct {
	path     string
	doc      document
	notifier notify.Notifier
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's time source. Used by tests to pin dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open loads the profile document at path, starting empty when the file
// does not exist yet.
func Open(path string, notifier notify.Notifier, opts ...Option) (*Store, error) {
	doc, err := storage.LoadDocument(path, document{})
	if err != nil {
		return nil, fmt.Errorf("storage.LoadDocument(%s) > %w", path, err)
	}

	store := &Store{
		path:     path,
		doc:      doc,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

func (s *Store) save() error {
	if err := storage.WriteDocument(s.path, s.doc); err != nil {
		return fmt.Errorf("storage.WriteDocument(%s) > %w", s.path, err)
	}
	return nil
}

func (s *Store) notify(notification notify.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Schedule(context.Background(), notification); err != nil {
		slog.Default().Warn("failed to schedule notification",
			"title", notification.Title,
			"error", err,
		)
	}
}

// Today returns the current calendar date in DateLayout form.
func (s *Store) Today() string {
	return s.now().Format(DateLayout)
}

// Profile returns a copy of the current profile, if one exists.
func (s *Store) Profile() (UserProfile, bool) {
	if s.doc.Profile == nil {
		return UserProfile{}, false
	}
	p := *s.doc.Profile
	p.Subjects = append([]string(nil), s.doc.Profile.Subjects...)
	p.Badges = append([]string(nil), s.doc.Profile.Badges...)
	return p, true
}

// Onboarded reports whether onboarding has completed.
func (s *Store) Onboarded() bool {
	return s.doc.Onboarded
}

// LastSharePrompt returns the date the share prompt was last surfaced, or
// an empty string when it never was.
func (s *Store) LastSharePrompt() string {
	return s.doc.LastSharePrompt
}

// SetProfile replaces the profile wholesale. The caller guarantees age and
// grade are positive and subjects is non-empty.
func (s *Store) SetProfile(profile UserProfile) error {
	s.doc.Profile = &profile
	return s.save()
}

// UpdateProfile merges non-nil fields of the update into the existing
// profile. A missing profile makes this a silent no-op.
func (s *Store) UpdateProfile(update Update) error {
	if s.doc.Profile == nil {
		return nil
	}
	if update.Name != nil {
		s.doc.Profile.Name = *update.Name
	}
	if update.Age != nil {
		s.doc.Profile.Age = *update.Age
	}
	if update.Grade != nil {
		s.doc.Profile.Grade = *update.Grade
	}
	if update.Subjects != nil {
		s.doc.Profile.Subjects = append([]string(nil), update.Subjects...)
	}
	return s.save()
}

// SetOnboarded records onboarding completion.
func (s *Store) SetOnboarded(value bool) error {
	s.doc.Onboarded = value
	return s.save()
}

// SetLastSharePrompt records the date the share prompt was last surfaced.
func (s *Store) SetLastSharePrompt(date string) error {
	s.doc.LastSharePrompt = date
	return s.save()
}

// AddPoints adds points to the profile. Crossing the 50-point milestone
// from below triggers a one-time notification. A missing profile makes
// this a silent no-op.
func (s *Store) AddPoints(points int) error {
	if s.doc.Profile == nil {
		return nil
	}
	s.addPoints(points)
	return s.save()
}

func (s *Store) addPoints(points int) {
	previous := s.doc.Profile.Points
	s.doc.Profile.Points = previous + points

	if previous < pointMilestone && s.doc.Profile.Points >= pointMilestone {
		s.notify(notify.Notification{
			Title:   "Milestone Reached!",
			Body:    "You've earned 50 points! Keep up the great work!",
			Trigger: notify.Immediately(),
		})
	}
}

// AddBadge grants a badge once. A badge already present is a no-op: no
// duplicate entry and no repeated bonus. New badges carry a fixed 10-point
// bonus and a notification. A missing profile makes this a silent no-op.
func (s *Store) AddBadge(badgeID string) error {
	if s.doc.Profile == nil {
		return nil
	}
	if s.doc.Profile.HasBadge(badgeID) {
		return nil
	}

	s.doc.Profile.Badges = append(s.doc.Profile.Badges, badgeID)
	s.addPoints(badgeBonusPoints)
	s.notify(notify.Notification{
		Title:   "New Badge Earned!",
		Body:    "You've earned a new achievement badge! Check it out in your profile.",
		Trigger: notify.Immediately(),
	})
	return s.save()
}

// IncrementStreak advances the streak by one day, stamps lastActive to
// today, and awards the streak bonus. The monthly tier is checked before
// the weekly tier so the highest tier wins when both match.
func (s *Store) IncrementStreak() error {
	if s.doc.Profile == nil {
		return nil
	}

	s.doc.Profile.Streak++
	s.doc.Profile.LastActive = s.Today()

	streak := s.doc.Profile.Streak
	switch {
	case streak%30 == 0:
		s.addPoints(streakBonusMonthly)
	case streak%7 == 0:
		s.addPoints(streakBonusWeekly)
	default:
		s.addPoints(streakBonusDaily)
	}

	for _, milestone := range streakNotificationMilestones {
		if streak == milestone {
			s.notify(notify.Notification{
				Title:   fmt.Sprintf("%d Day Streak!", streak),
				Body:    fmt.Sprintf("Amazing! You've maintained your learning streak for %d days. Keep it up!", streak),
				Trigger: notify.After(streakNotificationDelay),
			})
		}
	}
	return s.save()
}

// ResetStreak sets the streak back to zero with no other side effects.
func (s *Store) ResetStreak() error {
	if s.doc.Profile == nil {
		return nil
	}
	s.doc.Profile.Streak = 0
	return s.save()
}

// CheckAndUpdateStreak reconciles the streak against the calendar once per
// day, typically at app launch. Active yesterday extends the streak; a gap
// of two or more days (or no recorded activity) resets it and stamps
// lastActive to today. A second call on the same day is a no-op because
// lastActive is checked before any mutation.
func (s *Store) CheckAndUpdateStreak() error {
	if s.doc.Profile == nil {
		return nil
	}

	today := s.Today()
	yesterday := s.now().AddDate(0, 0, -1).Format(DateLayout)
	lastActive := s.doc.Profile.LastActive

	switch {
	case lastActive == today:
		return nil
	case lastActive == yesterday:
		return s.IncrementStreak()
	default:
		s.doc.Profile.Streak = 0
		s.doc.Profile.LastActive = today
		return s.save()
	}
}
