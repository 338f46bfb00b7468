package profile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_notify "github.com/kmatsui/studypal/internal/mocks/notify"
	"github.com/kmatsui/studypal/internal/notify"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time {
		return t
	}
}

func TestStore_AddPoints(t *testing.T) {
	testCases := []struct {
		name              string
		initialPoints     int
		additions         []int
		wantPoints        int
		wantNotifications int
	}{
		{
			name:              "points accumulate across additions",
			additions:         []int{1, 2, 5},
			wantPoints:        8,
			wantNotifications: 0,
		},
		{
			name:              "crossing 50 from below notifies once",
			initialPoints:     48,
			additions:         []int{2, 3},
			wantPoints:        53,
			wantNotifications: 1,
		},
		{
			name:              "landing exactly on 50 notifies",
			initialPoints:     49,
			additions:         []int{1},
			wantPoints:        50,
			wantNotifications: 1,
		},
		{
			name:              "already at or above 50 stays quiet",
			initialPoints:     50,
			additions:         []int{10},
			wantPoints:        60,
			wantNotifications: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_notify.NewMockNotifier(ctrl)
			notifier.EXPECT().
				Schedule(gomock.Any(), gomock.Any()).
				Return(nil).
				Times(tc.wantNotifications)

			store, err := Open(filepath.Join(t.TempDir(), "profile.json"), notifier)
			require.NoError(t, err)
			require.NoError(t, store.SetProfile(UserProfile{
				Name:   "Mika",
				Points: tc.initialPoints,
			}))

			for _, points := range tc.additions {
				require.NoError(t, store.AddPoints(points))
			}

			got, ok := store.Profile()
			require.True(t, ok)
			assert.Equal(t, tc.wantPoints, got.Points)
		})
	}

	t.Run("no profile is a no-op", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "profile.json"), nil)
		require.NoError(t, err)
		require.NoError(t, store.AddPoints(10))
		_, ok := store.Profile()
		assert.False(t, ok)
	})
}

func TestStore_AddBadge(t *testing.T) {
	t.Run("new badge adds bonus points and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_notify.NewMockNotifier(ctrl)
		notifier.EXPECT().
			Schedule(gomock.Any(), gomock.AssignableToTypeOf(notify.Notification{})).
			DoAndReturn(func(_ context.Context, notification notify.Notification) error {
				assert.Equal(t, "New Badge Earned!", notification.Title)
				return nil
			})

		store, err := Open(filepath.Join(t.TempDir(), "profile.json"), notifier)
		require.NoError(t, err)
		require.NoError(t, store.SetProfile(UserProfile{Name: "Mika"}))

		require.NoError(t, store.AddBadge("first_question"))

		got, ok := store.Profile()
		require.True(t, ok)
		assert.Equal(t, []string{"first_question"}, got.Badges)
		assert.Equal(t, 10, got.Points)
	})

	t.Run("duplicate badge grants nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock_notify.NewMockNotifier(ctrl)
		notifier.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		store, err := Open(filepath.Join(t.TempDir(), "profile.json"), notifier)
		require.NoError(t, err)
		require.NoError(t, store.SetProfile(UserProfile{Name: "Mika"}))

		require.NoError(t, store.AddBadge("math_expert"))
		require.NoError(t, store.AddBadge("math_expert"))

		got, ok := store.Profile()
		require.True(t, ok)
		assert.Equal(t, []string{"math_expert"}, got.Badges)
		assert.Equal(t, 10, got.Points)
	})
}

func TestStore_IncrementStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	testCases := []struct {
		name              string
		initialStreak     int
		wantStreak        int
		wantPoints        int
		wantNotifications int
	}{
		{
			name:          "ordinary day earns a single point",
			initialStreak: 3,
			wantStreak:    4,
			wantPoints:    1,
		},
		{
			name:              "seventh day earns the weekly bonus",
			initialStreak:     6,
			wantStreak:        7,
			wantPoints:        15,
			wantNotifications: 1,
		},
		{
			name:              "thirtieth day earns the monthly bonus",
			initialStreak:     29,
			wantStreak:        30,
			wantPoints:        50,
			wantNotifications: 1,
		},
		{
			name:          "day 210 is a multiple of both and pays the monthly tier",
			initialStreak: 209,
			wantStreak:    210,
			wantPoints:    50,
		},
		{
			name:              "hundredth day notifies without a tier bonus",
			initialStreak:     99,
			wantStreak:        100,
			wantPoints:        1,
			wantNotifications: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			notifier := mock_notify.NewMockNotifier(ctrl)
			notifier.EXPECT().
				Schedule(gomock.Any(), gomock.Any()).
				Return(nil).
				Times(tc.wantNotifications)

			store, err := Open(filepath.Join(t.TempDir(), "profile.json"), notifier, WithClock(fixedClock(now)))
			require.NoError(t, err)
			require.NoError(t, store.SetProfile(UserProfile{
				Name:   "Mika",
				Streak: tc.initialStreak,
			}))

			require.NoError(t, store.IncrementStreak())

			got, ok := store.Profile()
			require.True(t, ok)
			assert.Equal(t, tc.wantStreak, got.Streak)
			assert.Equal(t, tc.wantPoints, got.Points)
			assert.Equal(t, "2026-03-10", got.LastActive)
		})
	}
}

func TestStore_CheckAndUpdateStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	testCases := []struct {
		name           string
		lastActive     string
		initialStreak  int
		wantStreak     int
		wantLastActive string
	}{
		{
			name:           "active yesterday extends the streak",
			lastActive:     "2026-03-09",
			initialStreak:  4,
			wantStreak:     5,
			wantLastActive: "2026-03-10",
		},
		{
			name:           "already counted today is a no-op",
			lastActive:     "2026-03-10",
			initialStreak:  4,
			wantStreak:     4,
			wantLastActive: "2026-03-10",
		},
		{
			name:           "a two day gap resets the streak",
			lastActive:     "2026-03-08",
			initialStreak:  12,
			wantStreak:     0,
			wantLastActive: "2026-03-10",
		},
		{
			name:           "no recorded activity resets the streak",
			lastActive:     "",
			initialStreak:  2,
			wantStreak:     0,
			wantLastActive: "2026-03-10",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := Open(filepath.Join(t.TempDir(), "profile.json"), nil, WithClock(fixedClock(now)))
			require.NoError(t, err)
			require.NoError(t, store.SetProfile(UserProfile{
				Name:       "Mika",
				Streak:     tc.initialStreak,
				LastActive: tc.lastActive,
			}))

			require.NoError(t, store.CheckAndUpdateStreak())

			got, ok := store.Profile()
			require.True(t, ok)
			assert.Equal(t, tc.wantStreak, got.Streak)
			assert.Equal(t, tc.wantLastActive, got.LastActive)
		})
	}

	t.Run("a second check on the same day changes nothing", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "profile.json"), nil, WithClock(fixedClock(now)))
		require.NoError(t, err)
		require.NoError(t, store.SetProfile(UserProfile{
			Name:       "Mika",
			Streak:     6,
			LastActive: "2026-03-09",
		}))

		require.NoError(t, store.CheckAndUpdateStreak())
		require.NoError(t, store.CheckAndUpdateStreak())

		got, ok := store.Profile()
		require.True(t, ok)
		assert.Equal(t, 7, got.Streak)
	})
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")

	store, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.SetProfile(UserProfile{
		Name:     "Mika",
		Age:      13,
		Grade:    7,
		Subjects: []string{"math", "science"},
	}))
	require.NoError(t, store.SetOnboarded(true))
	require.NoError(t, store.SetLastSharePrompt("2026-03-01"))
	require.NoError(t, store.AddPoints(12))

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	got, ok := reopened.Profile()
	require.True(t, ok)
	assert.Equal(t, "Mika", got.Name)
	assert.Equal(t, 12, got.Points)
	assert.Equal(t, []string{"math", "science"}, got.Subjects)
	assert.True(t, reopened.Onboarded())
	assert.Equal(t, "2026-03-01", reopened.LastSharePrompt())
}
