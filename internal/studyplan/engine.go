package studyplan

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kmatsui/studypal/internal/catalog"
	"github.com/kmatsui/studypal/internal/storage"
)

const (
	minTaskCount  = 3
	taskCountSpan = 3

	// durationStep spaces the allowed task lengths: 15, 30, 45 or 60 minutes.
	durationStep  = 15
	durationTiers = 4
)

type document struct {
	Plans []StudyPlan `json:"plans"`
}

// Engine owns the plans document. Generation and task toggling write the
// document back after every mutation.
type Engine struct {
	path string
	doc  document
	now  func() time.Time
	rng  *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests to pin dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithRand overrides the engine's randomness source. Used by tests for
// deterministic plans.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// Open loads the plans document at path, starting empty when the file does
// not exist yet.
func Open(path string, opts ...Option) (*Engine, error) {
	doc, err := storage.LoadDocument(path, document{})
	if err != nil {
		return nil, fmt.Errorf("storage.LoadDocument(%s) > %w", path, err)
	}

	engine := &Engine{
		path: path,
		doc:  doc,
		now:  time.Now,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

func (e *Engine) save() error {
	if err := storage.WriteDocument(e.path, e.doc); err != nil {
		return fmt.Errorf("storage.WriteDocument(%s) > %w", e.path, err)
	}
	return nil
}

func (e *Engine) today() string {
	return e.now().Format("2006-01-02")
}

// Generate creates a plan of 3 to 5 randomly drawn tasks for today from
// the given subject ids. When a plan for today already exists it is
// returned unchanged, and an empty subject list generates nothing. The
// second return reports whether a new plan was created.
func (e *Engine) Generate(subjectIDs []string) (StudyPlan, bool, error) {
	if existing, ok := e.TodayPlan(); ok {
		return existing, false, nil
	}
	if len(subjectIDs) == 0 {
		return StudyPlan{}, false, nil
	}

	now := e.now()
	millis := now.UnixMilli()
	taskCount := e.rng.Intn(taskCountSpan) + minTaskCount

	tasks := make([]StudyTask, 0, taskCount)
	for i := 0; i < taskCount; i++ {
		subjectID := subjectIDs[e.rng.Intn(len(subjectIDs))]
		duration := (e.rng.Intn(durationTiers) + 1) * durationStep
		subject := catalog.SubjectName(subjectID)
		tasks = append(tasks, StudyTask{
			ID:          fmt.Sprintf("task-%d-%d", millis, i),
			Subject:     subject,
			Description: fmt.Sprintf("Study %s for %d minutes", subject, duration),
			Duration:    duration,
		})
	}

	plan := StudyPlan{
		ID:    fmt.Sprintf("plan-%d", millis),
		Date:  e.today(),
		Tasks: tasks,
	}
	e.doc.Plans = append([]StudyPlan{plan}, e.doc.Plans...)
	if err := e.save(); err != nil {
		return StudyPlan{}, false, err
	}
	return plan, true, nil
}

// TodayPlan returns today's plan, if one exists.
func (e *Engine) TodayPlan() (StudyPlan, bool) {
	return e.PlanByDate(e.today())
}

// PlanByDate returns the plan for the given date, if one exists.
func (e *Engine) PlanByDate(date string) (StudyPlan, bool) {
	for _, plan := range e.doc.Plans {
		if plan.Date == date {
			return clonePlan(plan), true
		}
	}
	return StudyPlan{}, false
}

// Plans returns every stored plan, newest first.
func (e *Engine) Plans() []StudyPlan {
	plans := make([]StudyPlan, 0, len(e.doc.Plans))
	for _, plan := range e.doc.Plans {
		plans = append(plans, clonePlan(plan))
	}
	return plans
}

// ToggleTask flips one task's completed flag and recomputes the plan's
// completed flag from its tasks. Unknown plan or task ids are silent
// no-ops.
func (e *Engine) ToggleTask(planID, taskID string) error {
	for i := range e.doc.Plans {
		plan := &e.doc.Plans[i]
		if plan.ID != planID {
			continue
		}
		for j := range plan.Tasks {
			if plan.Tasks[j].ID != taskID {
				continue
			}
			plan.Tasks[j].Completed = !plan.Tasks[j].Completed
			plan.Completed = plan.allTasksCompleted()
			return e.save()
		}
		return nil
	}
	return nil
}

func clonePlan(plan StudyPlan) StudyPlan {
	plan.Tasks = append([]StudyTask(nil), plan.Tasks...)
	return plan
}
