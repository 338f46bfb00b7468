package catalog

// Badge describes one entry of the fixed achievement catalog.
// RequiredPoints is informational display data; badges are granted by
// engagement rules, not by a points threshold.
type Badge struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	RequiredPoints int
	Color          string
}

// Badge ids referenced by the engagement award rules.
const (
	BadgeFirstQuestion     = "first_question"
	BadgeFiveQuestions     = "five_questions"
	BadgeTenQuestions      = "ten_questions"
	BadgeMathExpert        = "math_expert"
	BadgeScienceExplorer   = "science_explorer"
	BadgeConsistentLearner = "consistent_learner"
	BadgePhotoMaster       = "photo_master"
)

var badges = []Badge{
	{
		ID:             BadgeFirstQuestion,
		Name:           "Curious Mind",
		Description:    "Asked your first question",
		Icon:           "help-circle",
		RequiredPoints: 1,
		Color:          "#4C6EF5",
	},
	{
		ID:             BadgeFiveQuestions,
		Name:           "Knowledge Seeker",
		Description:    "Asked 5 questions",
		Icon:           "search",
		RequiredPoints: 5,
		Color:          "#12B886",
	},
	{
		ID:             BadgeTenQuestions,
		Name:           "Deep Thinker",
		Description:    "Asked 10 questions",
		Icon:           "brain",
		RequiredPoints: 10,
		Color:          "#7950F2",
	},
	{
		ID:             BadgeMathExpert,
		Name:           "Math Wizard",
		Description:    "Solved 5 math problems",
		Icon:           "calculator",
		RequiredPoints: 5,
		Color:          "#FA5252",
	},
	{
		ID:             BadgeScienceExplorer,
		Name:           "Science Explorer",
		Description:    "Asked 5 science questions",
		Icon:           "flask",
		RequiredPoints: 5,
		Color:          "#15AABF",
	},
	{
		ID:             BadgeConsistentLearner,
		Name:           "Consistent Learner",
		Description:    "Used the app for 5 days in a row",
		Icon:           "calendar",
		RequiredPoints: 5,
		Color:          "#FD7E14",
	},
	{
		ID:             BadgePhotoMaster,
		Name:           "Photo Master",
		Description:    "Uploaded 3 homework photos",
		Icon:           "image",
		RequiredPoints: 3,
		Color:          "#40C057",
	},
}

// Badges returns the full badge catalog in display order.
func Badges() []Badge {
	result := make([]Badge, len(badges))
	copy(result, badges)
	return result
}

// BadgeByID returns the badge with the given id.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
