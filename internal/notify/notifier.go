// Package notify defines the external notification collaborator. The engine
// only decides what to notify and when; delivery is delegated entirely to a
// Notifier implementation and carries no confirmation contract.
package notify

import (
	"context"
	"log/slog"
	"time"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/notify/mock_notifier.go -package=mock_notify

// Trigger describes when a notification should fire: immediately (zero
// value), after a relative delay, or at an absolute instant.
type Trigger struct {
	delay time.Duration
	at    time.Time
}

// Immediately returns a trigger that fires right away.
func Immediately() Trigger {
	return Trigger{}
}

// After returns a trigger that fires once the delay has elapsed.
func After(delay time.Duration) Trigger {
	return Trigger{delay: delay}
}

// At returns a trigger that fires at the given instant.
func At(at time.Time) Trigger {
	return Trigger{at: at}
}

// FireTime resolves the trigger to an absolute instant relative to now.
func (t Trigger) FireTime(now time.Time) time.Time {
	if !t.at.IsZero() {
		return t.at
	}
	return now.Add(t.delay)
}

// Notification is a single scheduled notification.
type Notification struct {
	Title   string
	Body    string
	Trigger Trigger
}

// Notifier schedules notifications with an external delivery mechanism.
type Notifier interface {
	Schedule(ctx context.Context, notification Notification) error
}

// ConsoleNotifier logs scheduled notifications through slog. It stands in
// for a platform notification service in CLI usage.
type ConsoleNotifier struct{}

// NewConsoleNotifier creates a new ConsoleNotifier.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// Schedule implements the Notifier interface.
func (n *ConsoleNotifier) Schedule(ctx context.Context, notification Notification) error {
	slog.Default().Info("notification scheduled",
		"title", notification.Title,
		"body", notification.Body,
		"fireAt", notification.Trigger.FireTime(time.Now()).Format(time.RFC3339),
	)
	return nil
}
