// Package cli implements the interactive ask session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/kmatsui/studypal/internal/catalog"
	"github.com/kmatsui/studypal/internal/engagement"
	"github.com/kmatsui/studypal/internal/profile"
	"github.com/kmatsui/studypal/internal/qalog"
	"github.com/kmatsui/studypal/internal/tutoring"
)

var errEnd = errors.New("end")

// AskSession manages the interactive question-and-answer session.
type AskSession struct {
	profiles   *profile.Store
	log        *qalog.Log
	tutor      tutoring.Client
	engagement *engagement.Orchestrator

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

// AskOption configures an AskSession.
type AskOption func(*AskSession)

// WithInput overrides the session's input stream.
func WithInput(in io.Reader) AskOption {
	return func(s *AskSession) {
		s.stdinReader = bufio.NewReader(in)
	}
}

// WithOutput overrides the session's output stream.
func WithOutput(out io.Writer) AskOption {
	return func(s *AskSession) {
		s.stdoutWriter = out
	}
}

// WithClock overrides the session's time source.
func WithClock(now func() time.Time) AskOption {
	return func(s *AskSession) {
		s.now = now
	}
}

// NewAskSession creates a new interactive ask session.
func NewAskSession(
	profiles *profile.Store,
	log *qalog.Log,
	tutor tutoring.Client,
	orchestrator *engagement.Orchestrator,
	opts ...AskOption,
) *AskSession {
	session := &AskSession{
		profiles:     profiles,
		log:          log,
		tutor:        tutor,
		engagement:   orchestrator,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(session)
	}
	return session
}

// Run loops sessions until the user quits or interrupts.
func (s *AskSession) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := s.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(s.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session runs one question round: subject, question text, optional image,
// then the tutoring answer. Empty question input ends the session without
// any state change.
func (s *AskSession) Session(ctx context.Context) error {
	fmt.Fprintf(s.stdoutWriter, "Subjects: %s\n", strings.Join(catalog.SubjectIDs(), ", "))
	fmt.Fprint(s.stdoutWriter, "Subject: ")
	subjectInput, err := s.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading subject input: %w", err)
	}
	subjectID := strings.TrimSpace(subjectInput)
	if subjectID == "quit" || subjectID == "exit" {
		fmt.Fprintln(s.stdoutWriter, "Ask session ended.")
		return errEnd
	}
	if subjectID == "" {
		subjectID = "other"
	}
	if _, ok := catalog.SubjectByID(subjectID); !ok {
		fmt.Fprintf(s.stdoutWriter, "Unknown subject '%s'.\n", subjectID)
		return nil
	}

	fmt.Fprint(s.stdoutWriter, "Question: ")
	questionInput, err := s.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading question input: %w", err)
	}
	text := strings.TrimSpace(questionInput)
	if text == "quit" || text == "exit" || text == "" {
		fmt.Fprintln(s.stdoutWriter, "Ask session ended.")
		return errEnd
	}

	fmt.Fprint(s.stdoutWriter, "Image path (optional): ")
	imageInput, err := s.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading image input: %w", err)
	}
	imageURI := strings.TrimSpace(imageInput)

	questionID, err := s.Submit(ctx, subjectID, text, imageURI)
	if err != nil {
		return fmt.Errorf("Submit() > %w", err)
	}

	answer, err := s.Answer(ctx, questionID)
	if err != nil {
		return fmt.Errorf("Answer() > %w", err)
	}

	s.bold.Fprintf(s.stdoutWriter, "\nTutor:\n")
	s.italic.Fprintf(s.stdoutWriter, "%s\n\n", answer)
	return nil
}

// Submit records a new question with its user message and pays the asking
// point. Returns the new question's id.
func (s *AskSession) Submit(ctx context.Context, subjectID, text, imageURI string) (string, error) {
	millis := s.now().UnixMilli()

	questionID, err := s.log.AddQuestion(qalog.Question{
		ID:        fmt.Sprintf("question-%d", millis),
		Text:      text,
		Subject:   subjectID,
		Timestamp: millis,
		ImageURI:  imageURI,
	})
	if err != nil {
		return "", fmt.Errorf("log.AddQuestion() > %w", err)
	}

	message := qalog.Message{
		ID:         fmt.Sprintf("message-%d-user", millis),
		QuestionID: questionID,
		Role:       qalog.RoleUser,
		Timestamp:  millis,
	}
	if imageURI != "" {
		message.Parts = []qalog.ContentPart{
			{Type: qalog.PartText, Text: text},
			{Type: qalog.PartImage, Image: imageURI},
		}
	} else {
		message.Content = text
	}
	if err := s.log.AddMessage(message); err != nil {
		return "", fmt.Errorf("log.AddMessage() > %w", err)
	}

	if err := s.profiles.AddPoints(1); err != nil {
		return "", fmt.Errorf("profiles.AddPoints() > %w", err)
	}
	if err := s.engagement.AfterQuestionAsked(); err != nil {
		return "", fmt.Errorf("engagement.AfterQuestionAsked() > %w", err)
	}
	return questionID, nil
}

// Answer asks the tutoring service for the question's answer and records
// the assistant message. When the tutoring call fails, a fixed fallback
// message is recorded instead and the question stays unanswered with no
// points paid.
func (s *AskSession) Answer(ctx context.Context, questionID string) (string, error) {
	if _, ok := s.log.Question(questionID); !ok {
		return "", fmt.Errorf("unknown question %s", questionID)
	}

	grade := tutoring.DefaultGrade
	if current, ok := s.profiles.Profile(); ok && current.Grade > 0 {
		grade = current.Grade
	}

	messages := []tutoring.Message{
		{Role: tutoring.RoleSystem, Content: tutoring.SystemPrompt(grade)},
	}
	for _, message := range s.log.MessagesFor(questionID) {
		if message.Role != qalog.RoleUser {
			continue
		}
		messages = append(messages, tutoring.UserMessage(message))
	}

	response, err := s.tutor.Complete(ctx, tutoring.CompletionRequest{Messages: messages})
	millis := s.now().UnixMilli()
	if err != nil {
		slog.Default().Warn("tutoring request failed",
			"questionID", questionID,
			"error", err,
		)
		fallback := qalog.Message{
			ID:         fmt.Sprintf("message-%d-assistant", millis),
			QuestionID: questionID,
			Role:       qalog.RoleAssistant,
			Content:    tutoring.FallbackAnswer,
			Timestamp:  millis,
		}
		if err := s.log.AddMessage(fallback); err != nil {
			return "", fmt.Errorf("log.AddMessage() > %w", err)
		}
		return tutoring.FallbackAnswer, nil
	}

	assistant := qalog.Message{
		ID:         fmt.Sprintf("message-%d-assistant", millis),
		QuestionID: questionID,
		Role:       qalog.RoleAssistant,
		Content:    response.Completion,
		Timestamp:  millis,
	}
	if err := s.log.AddMessage(assistant); err != nil {
		return "", fmt.Errorf("log.AddMessage() > %w", err)
	}
	if err := s.log.MarkAnswered(questionID); err != nil {
		return "", fmt.Errorf("log.MarkAnswered() > %w", err)
	}
	if err := s.profiles.AddPoints(2); err != nil {
		return "", fmt.Errorf("profiles.AddPoints() > %w", err)
	}
	if err := s.engagement.AfterQuestionAnswered(); err != nil {
		return "", fmt.Errorf("engagement.AfterQuestionAnswered() > %w", err)
	}
	return response.Completion, nil
}
