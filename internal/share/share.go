// Package share defines the external share-sheet collaborator.
package share

import (
	"context"
	"fmt"
	"io"
)

//go:generate mockgen -source=share.go -destination=../mocks/share/mock_sharer.go -package=mock_share

// Content is the payload handed to the platform share sheet.
type Content struct {
	Title   string
	Message string
	URL     string
}

// Sharer invokes an external sharing mechanism. A failed share degrades
// silently: the caller logs and moves on without blocking the primary flow.
type Sharer interface {
	Share(ctx context.Context, content Content) error
}

// ConsoleSharer writes the share content to a writer, standing in for a
// native share sheet. When no writer is available it behaves like the
// clipboard fallback and reports the content as a copyable line.
type ConsoleSharer struct {
	out io.Writer
}

// NewConsoleSharer creates a ConsoleSharer writing to out.
func NewConsoleSharer(out io.Writer) *ConsoleSharer {
	return &ConsoleSharer{out: out}
}

// Share implements the Sharer interface.
func (s *ConsoleSharer) Share(ctx context.Context, content Content) error {
	if s.out == nil {
		return fmt.Errorf("no share destination available")
	}
	if _, err := fmt.Fprintf(s.out, "%s\n%s %s\n", content.Title, content.Message, content.URL); err != nil {
		return fmt.Errorf("fmt.Fprintf() > %w", err)
	}
	return nil
}
