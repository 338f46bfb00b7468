package engagement

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kmatsui/studypal/internal/catalog"
	mock_notify "github.com/kmatsui/studypal/internal/mocks/notify"
	mock_share "github.com/kmatsui/studypal/internal/mocks/share"
	"github.com/kmatsui/studypal/internal/notify"
	"github.com/kmatsui/studypal/internal/profile"
	"github.com/kmatsui/studypal/internal/qalog"
	"github.com/kmatsui/studypal/internal/share"
)

func newFixture(t *testing.T, now time.Time, current *profile.UserProfile) (*profile.Store, *qalog.Log) {
	t.Helper()
	dir := t.TempDir()

	profiles, err := profile.Open(filepath.Join(dir, "profile.json"), nil,
		profile.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	if current != nil {
		require.NoError(t, profiles.SetProfile(*current))
	}

	log, err := qalog.Open(filepath.Join(dir, "questions.json"))
	require.NoError(t, err)
	return profiles, log
}

func askQuestions(t *testing.T, log *qalog.Log, count int, subject string) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := log.AddQuestion(qalog.Question{
			ID:      fmt.Sprintf("question-%s-%d", subject, i),
			Text:    "help",
			Subject: subject,
		})
		require.NoError(t, err)
	}
}

func TestOrchestrator_CheckAndShowSharePrompt(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	testCases := []struct {
		name            string
		now             time.Time
		questions       int
		badges          []string
		streak          int
		lastSharePrompt string
		wantShown       bool
	}{
		{
			name:      "all gates pass",
			questions: 5,
			badges:    []string{"first_question", "five_questions"},
			streak:    3,
			wantShown: true,
		},
		{
			name:      "too few questions",
			questions: 4,
			badges:    []string{"first_question", "five_questions"},
			streak:    3,
		},
		{
			name:      "too few badges",
			questions: 5,
			badges:    []string{"first_question"},
			streak:    3,
		},
		{
			name:      "streak too short",
			questions: 5,
			badges:    []string{"first_question", "five_questions"},
			streak:    2,
		},
		{
			name:            "prompted within the last week",
			questions:       5,
			badges:          []string{"first_question", "five_questions"},
			streak:          3,
			lastSharePrompt: "2026-03-05",
		},
		{
			name:            "last prompt over a week ago",
			questions:       5,
			badges:          []string{"first_question", "five_questions"},
			streak:          3,
			lastSharePrompt: "2026-03-01",
			wantShown:       true,
		},
		{
			// A zone ahead of UTC is still on day seven even though fewer
			// than 7*24 hours have elapsed since the stamp's UTC midnight.
			name:            "seventh calendar day ahead of UTC",
			now:             time.Date(2026, 3, 10, 9, 0, 0, 0, time.FixedZone("AEST", 10*60*60)),
			questions:       5,
			badges:          []string{"first_question", "five_questions"},
			streak:          3,
			lastSharePrompt: "2026-03-03",
			wantShown:       true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.now.IsZero() {
				tc.now = now
			}
			profiles, log := newFixture(t, tc.now, &profile.UserProfile{
				Name:   "Mika",
				Streak: tc.streak,
				Badges: tc.badges,
			})
			if tc.lastSharePrompt != "" {
				require.NoError(t, profiles.SetLastSharePrompt(tc.lastSharePrompt))
			}
			askQuestions(t, log, tc.questions, "math")

			orchestrator := New(profiles, log, nil, nil, WithClock(func() time.Time { return tc.now }))
			shown, err := orchestrator.CheckAndShowSharePrompt()
			require.NoError(t, err)
			assert.Equal(t, tc.wantShown, shown)

			_, visible := orchestrator.VisiblePopup(PopupShare)
			assert.Equal(t, tc.wantShown, visible)
			if tc.wantShown {
				assert.Equal(t, "2026-03-10", profiles.LastSharePrompt())
			}
		})
	}
}

func TestOrchestrator_PopupExclusion(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
	orchestrator := New(profiles, log, nil, nil, WithClock(func() time.Time { return now }))

	assert.True(t, orchestrator.ShowBadgeAchievement(catalog.BadgeFirstQuestion))
	assert.False(t, orchestrator.ShowBadgeAchievement(catalog.BadgeMathExpert))

	popup, ok := orchestrator.VisiblePopup(PopupBadge)
	require.True(t, ok)
	assert.Equal(t, catalog.BadgeFirstQuestion, popup.BadgeID)

	orchestrator.Dismiss(PopupBadge)
	assert.True(t, orchestrator.ShowBadgeAchievement(catalog.BadgeMathExpert))

	// other kinds are unaffected
	assert.True(t, orchestrator.ShowStreakMilestone(7))
}

func TestOrchestrator_ShowStreakMilestone(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
	orchestrator := New(profiles, log, nil, nil)

	assert.False(t, orchestrator.ShowStreakMilestone(4))
	assert.False(t, orchestrator.ShowStreakMilestone(0))
	assert.True(t, orchestrator.ShowStreakMilestone(14))

	popup, ok := orchestrator.VisiblePopup(PopupStreak)
	require.True(t, ok)
	assert.Equal(t, 14, popup.Streak)
}

func TestOrchestrator_ScheduleStreakReminder(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		wantFire time.Time
	}{
		{
			name:     "before 8 PM fires today",
			now:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			wantFire: time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC),
		},
		{
			name:     "after 8 PM rolls to tomorrow",
			now:      time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC),
			wantFire: time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_notify.NewMockNotifier(ctrl)
			notifier.EXPECT().
				Schedule(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, notification notify.Notification) error {
					assert.Equal(t, "Don't Break Your Streak!", notification.Title)
					assert.Equal(t, "You're on a 6 day streak! Take a moment to learn something new today.", notification.Body)
					assert.Equal(t, tc.wantFire, notification.Trigger.FireTime(tc.now))
					return nil
				})

			profiles, log := newFixture(t, tc.now, &profile.UserProfile{Name: "Mika", Streak: 6})
			orchestrator := New(profiles, log, notifier, nil, WithClock(func() time.Time { return tc.now }))
			require.NoError(t, orchestrator.ScheduleStreakReminder(context.Background()))
		})
	}

	t.Run("no profile schedules nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_notify.NewMockNotifier(ctrl)

		profiles, log := newFixture(t, time.Now(), nil)
		orchestrator := New(profiles, log, notifier, nil)
		require.NoError(t, orchestrator.ScheduleStreakReminder(context.Background()))
	})
}

func TestOrchestrator_ShareInvite(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("successful share pays the bonus", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sharer := mock_share.NewMockSharer(ctrl)
		sharer.EXPECT().
			Share(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, content share.Content) error {
				assert.Equal(t, "Join me on AI Homework Helper!", content.Title)
				assert.Equal(t, ShareURL, content.URL)
				return nil
			})

		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, sharer)
		require.NoError(t, orchestrator.ShareInvite(context.Background()))

		got, ok := profiles.Profile()
		require.True(t, ok)
		assert.Equal(t, 5, got.Points)
	})

	t.Run("failed share pays nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sharer := mock_share.NewMockSharer(ctrl)
		sharer.EXPECT().Share(gomock.Any(), gomock.Any()).Return(assert.AnError)

		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, sharer)
		require.Error(t, orchestrator.ShareInvite(context.Background()))

		got, ok := profiles.Profile()
		require.True(t, ok)
		assert.Equal(t, 0, got.Points)
	})
}

func TestOrchestrator_ShareQuestion(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	addQuestion := func(t *testing.T, log *qalog.Log, subject string) string {
		t.Helper()
		id, err := log.AddQuestion(qalog.Question{
			ID:       "question-1",
			Text:     "What is photosynthesis?",
			Subject:  subject,
			Answered: true,
		})
		require.NoError(t, err)
		return id
	}

	t.Run("successful share pays the bonus", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sharer := mock_share.NewMockSharer(ctrl)
		sharer.EXPECT().
			Share(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, content share.Content) error {
				assert.Equal(t, "I got help with my homework!", content.Title)
				assert.Equal(t, "I just got help with my Science question on AI Homework Helper! Check it out:", content.Message)
				assert.Equal(t, ShareURL, content.URL)
				return nil
			})

		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		id := addQuestion(t, log, "science")
		orchestrator := New(profiles, log, nil, sharer)
		require.NoError(t, orchestrator.ShareQuestion(context.Background(), id))

		got, ok := profiles.Profile()
		require.True(t, ok)
		assert.Equal(t, 3, got.Points)
	})

	t.Run("unknown subject falls back to homework", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sharer := mock_share.NewMockSharer(ctrl)
		sharer.EXPECT().
			Share(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, content share.Content) error {
				assert.Equal(t, "I just got help with my homework question on AI Homework Helper! Check it out:", content.Message)
				return nil
			})

		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		id := addQuestion(t, log, "philosophy")
		orchestrator := New(profiles, log, nil, sharer)
		require.NoError(t, orchestrator.ShareQuestion(context.Background(), id))
	})

	t.Run("failed share pays nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sharer := mock_share.NewMockSharer(ctrl)
		sharer.EXPECT().Share(gomock.Any(), gomock.Any()).Return(assert.AnError)

		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		id := addQuestion(t, log, "science")
		orchestrator := New(profiles, log, nil, sharer)
		require.Error(t, orchestrator.ShareQuestion(context.Background(), id))

		got, ok := profiles.Profile()
		require.True(t, ok)
		assert.Equal(t, 0, got.Points)
	})

	t.Run("unknown question", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sharer := mock_share.NewMockSharer(ctrl)

		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, sharer)
		assert.Error(t, orchestrator.ShareQuestion(context.Background(), "question-missing"))
	})
}

func TestOrchestrator_BadgeRules(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("five and ten question badges", func(t *testing.T) {
		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, nil)

		askQuestions(t, log, 4, "other")
		require.NoError(t, orchestrator.AfterQuestionAsked())
		got, _ := profiles.Profile()
		assert.Empty(t, got.Badges)

		askQuestions(t, log, 1, "other")
		require.NoError(t, orchestrator.AfterQuestionAsked())
		got, _ = profiles.Profile()
		assert.Equal(t, []string{catalog.BadgeFiveQuestions}, got.Badges)

		askQuestions(t, log, 5, "other")
		require.NoError(t, orchestrator.AfterQuestionAsked())
		got, _ = profiles.Profile()
		assert.Contains(t, got.Badges, catalog.BadgeTenQuestions)
	})

	t.Run("science and photo badges", func(t *testing.T) {
		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, nil)

		askQuestions(t, log, 5, "science")
		for i := 0; i < 3; i++ {
			_, err := log.AddQuestion(qalog.Question{
				ID:       fmt.Sprintf("question-image-%d", i),
				Text:     "what is this",
				Subject:  "science",
				ImageURI: "file:///tmp/photo.jpg",
			})
			require.NoError(t, err)
		}
		require.NoError(t, orchestrator.AfterQuestionAsked())

		got, _ := profiles.Profile()
		assert.Contains(t, got.Badges, catalog.BadgeScienceExplorer)
		assert.Contains(t, got.Badges, catalog.BadgePhotoMaster)
	})

	t.Run("first answer and math expert badges", func(t *testing.T) {
		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, nil)

		askQuestions(t, log, 5, "math")
		for _, question := range log.Questions() {
			require.NoError(t, log.MarkAnswered(question.ID))
		}
		require.NoError(t, orchestrator.AfterQuestionAnswered())

		got, _ := profiles.Profile()
		assert.Contains(t, got.Badges, catalog.BadgeFirstQuestion)
		assert.Contains(t, got.Badges, catalog.BadgeMathExpert)
	})

	t.Run("consistent learner badge and streak popup", func(t *testing.T) {
		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika", Streak: 7})
		orchestrator := New(profiles, log, nil, nil)

		require.NoError(t, orchestrator.AfterStreakUpdate())

		got, _ := profiles.Profile()
		assert.Contains(t, got.Badges, catalog.BadgeConsistentLearner)
		popup, ok := orchestrator.VisiblePopup(PopupStreak)
		require.True(t, ok)
		assert.Equal(t, 7, popup.Streak)
	})

	t.Run("awarding is idempotent across repeated checks", func(t *testing.T) {
		profiles, log := newFixture(t, now, &profile.UserProfile{Name: "Mika"})
		orchestrator := New(profiles, log, nil, nil)

		askQuestions(t, log, 5, "other")
		require.NoError(t, orchestrator.AfterQuestionAsked())
		require.NoError(t, orchestrator.AfterQuestionAsked())

		got, _ := profiles.Profile()
		assert.Equal(t, []string{catalog.BadgeFiveQuestions}, got.Badges)
		assert.Equal(t, 10, got.Points)
	})
}
