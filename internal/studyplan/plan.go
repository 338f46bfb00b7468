// Package studyplan generates and tracks daily study plans, one plan per
// calendar date.
package studyplan

// StudyTask is a single timed activity within a daily plan.
type StudyTask struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	// Duration is the planned length in minutes.
	Duration  int  `json:"duration"`
	Completed bool `json:"completed"`
}

// StudyPlan is the set of tasks planned for one date. Completed is derived:
// it holds only when every task is completed.
type StudyPlan struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	Completed bool        `json:"completed"`
	Tasks     []StudyTask `json:"tasks"`
}

func (p StudyPlan) allTasksCompleted() bool {
	for _, task := range p.Tasks {
		if !task.Completed {
			return false
		}
	}
	return len(p.Tasks) > 0
}
