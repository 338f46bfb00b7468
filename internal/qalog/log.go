// Package qalog provides the append-only record of homework questions and
// their message threads.
package qalog

import (
	"fmt"
	"sort"

	"github.com/kmatsui/studypal/internal/storage"
)

// Role identifies the author of a message within a question thread.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// PartType identifies the kind of a message content part.
type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image"
)

// ContentPart is one element of a multi-part message body.
type ContentPart struct {
	Type  PartType `json:"type"`
	Text  string   `json:"text,omitempty"`
	Image string   `json:"image,omitempty"`
}

// Question is one submitted homework question. Only the Answered flag is
// mutated after creation; questions are never deleted.
type Question struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Subject   string `json:"subject"`
	Timestamp int64  `json:"timestamp"`
	ImageURI  string `json:"imageUri,omitempty"`
	Answered  bool   `json:"answered"`
}

// Message is one entry of a question thread. A message body is either a
// plain Content string or an ordered sequence of Parts. Messages are
// immutable once recorded.
type Message struct {
	ID         string        `json:"id"`
	QuestionID string        `json:"questionId"`
	Role       Role          `json:"role"`
	Content    string        `json:"content,omitempty"`
	Parts      []ContentPart `json:"parts,omitempty"`
	Timestamp  int64         `json:"timestamp"`
}

type document struct {
	Questions []Question `json:"questions"`
	Messages  []Message  `json:"messages"`
}

// Log stores questions and messages in memory, mirroring every mutation to
// a JSON document. Stored order is prepend order; chronological views are
// derived projections.
type Log struct {
	path string
	doc  document
}

// Open loads the question log document at path, starting empty when the
// file does not exist yet.
func Open(path string) (*Log, error) {
	doc, err := storage.LoadDocument(path, document{})
	if err != nil {
		return nil, fmt.Errorf("storage.LoadDocument(%s) > %w", path, err)
	}
	return &Log{path: path, doc: doc}, nil
}

func (l *Log) save() error {
	if err := storage.WriteDocument(l.path, l.doc); err != nil {
		return fmt.Errorf("storage.WriteDocument(%s) > %w", l.path, err)
	}
	return nil
}

// AddQuestion prepends a question and returns its caller-supplied id.
// The caller must guarantee id uniqueness.
func (l *Log) AddQuestion(question Question) (string, error) {
	l.doc.Questions = append([]Question{question}, l.doc.Questions...)
	if err := l.save(); err != nil {
		return question.ID, err
	}
	return question.ID, nil
}

// AddMessage prepends a message. The question id is not validated against
// existing questions.
func (l *Log) AddMessage(message Message) error {
	l.doc.Messages = append([]Message{message}, l.doc.Messages...)
	return l.save()
}

// Questions returns all questions, most recent first.
func (l *Log) Questions() []Question {
	result := make([]Question, len(l.doc.Questions))
	copy(result, l.doc.Questions)
	return result
}

// Question returns the question with the given id.
func (l *Log) Question(id string) (Question, bool) {
	for _, q := range l.doc.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// MessagesFor returns the messages of one question thread ordered by
// ascending timestamp. The projection never mutates stored order.
func (l *Log) MessagesFor(questionID string) []Message {
	var result []Message
	for _, m := range l.doc.Messages {
		if m.QuestionID == questionID {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp < result[j].Timestamp
	})
	return result
}

// MarkAnswered flips a question's answered flag to true. The flip is
// one-way and idempotent; an unknown id is a no-op.
func (l *Log) MarkAnswered(questionID string) error {
	for i := range l.doc.Questions {
		if l.doc.Questions[i].ID != questionID {
			continue
		}
		if l.doc.Questions[i].Answered {
			return nil
		}
		l.doc.Questions[i].Answered = true
		return l.save()
	}
	return nil
}

// QuestionCount returns the total number of questions asked.
func (l *Log) QuestionCount() int {
	return len(l.doc.Questions)
}

// AnsweredCount returns the number of questions that have been answered.
func (l *Log) AnsweredCount() int {
	count := 0
	for _, q := range l.doc.Questions {
		if q.Answered {
			count++
		}
	}
	return count
}

// CountBySubject returns how many questions were asked for a subject,
// optionally restricted to answered ones.
func (l *Log) CountBySubject(subject string, answeredOnly bool) int {
	count := 0
	for _, q := range l.doc.Questions {
		if q.Subject != subject {
			continue
		}
		if answeredOnly && !q.Answered {
			continue
		}
		count++
	}
	return count
}

// ImageQuestionCount returns the number of questions with an attached image.
func (l *Log) ImageQuestionCount() int {
	count := 0
	for _, q := range l.doc.Questions {
		if q.ImageURI != "" {
			count++
		}
	}
	return count
}
