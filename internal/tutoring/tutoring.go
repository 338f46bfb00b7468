// Package tutoring defines the external text-completion collaborator that
// produces tutoring answers, plus the prompt assembly for a question
// thread.
package tutoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/kmatsui/studypal/internal/qalog"
)

//go:generate mockgen -source=tutoring.go -destination=../mocks/tutoring/mock_client.go -package=mock_tutoring

// Role tags a message for the completion request.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged message of a completion request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest holds the ordered messages sent to the tutoring service.
type CompletionRequest struct {
	Messages []Message `json:"messages"`
}

// CompletionResponse holds the single completion string returned by the
// tutoring service.
type CompletionResponse struct {
	Completion string `json:"completion"`
}

// Client is the request/response interface to the tutoring service.
type Client interface {
	Complete(ctx context.Context, params CompletionRequest) (CompletionResponse, error)
}

const (
	// FallbackAnswer substitutes for the assistant reply when the tutoring
	// call fails. Callers must not propagate the failure further.
	FallbackAnswer = "I'm having trouble connecting right now. Please try again in a moment."

	// imagePlaceholder replaces image parts when flattening multi-part
	// content into a single text blob.
	imagePlaceholder = "[Image attached]"

	// DefaultGrade is assumed when no profile grade is available.
	DefaultGrade = 8

	// DefaultMaxRetryAttempts bounds transient-error retries inside a client.
	DefaultMaxRetryAttempts = 3
)

// SystemPrompt returns the tutoring system prompt for a student in the
// given grade.
func SystemPrompt(grade int) string {
	if grade <= 0 {
		grade = DefaultGrade
	}
	return fmt.Sprintf(`You are a helpful, friendly, and patient AI tutor for a student in grade %d.
Explain concepts clearly and step-by-step in a way that's easy to understand.
Be encouraging and supportive. If the student is asking about a homework problem,
guide them through the solution process rather than just giving the answer.
Keep explanations concise but thorough.`, grade)
}

// UserMessage converts a logged question message into a request message,
// flattening multi-part content into one text blob with image parts
// replaced by a literal placeholder.
func UserMessage(message qalog.Message) Message {
	return Message{
		Role:    Role(message.Role),
		Content: Flatten(message),
	}
}

// Flatten renders a logged message body as plain text.
func Flatten(message qalog.Message) string {
	if len(message.Parts) == 0 {
		return message.Content
	}

	lines := make([]string, 0, len(message.Parts))
	for _, part := range message.Parts {
		switch part.Type {
		case qalog.PartText:
			lines = append(lines, part.Text)
		case qalog.PartImage:
			lines = append(lines, imagePlaceholder)
		}
	}
	return strings.Join(lines, "\n")
}
