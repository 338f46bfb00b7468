// Package profile provides the single authoritative holder of the user's
// identity, points, streak, and badges. All point, badge, and streak
// changes funnel through the Store.
package profile

// DateLayout is the calendar-date form used for lastActive and share
// prompt stamps.
const DateLayout = "2006-01-02"

// UserProfile is the user's durable profile. Points only ever increase and
// badges never contain duplicates.
type UserProfile struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Grade      int      `json:"grade"`
	Subjects   []string `json:"subjects"`
	Points     int      `json:"points"`
	Streak     int      `json:"streak"`
	LastActive string   `json:"lastActive"`
	Badges     []string `json:"badges"`
}

// HasBadge reports whether the profile already holds the badge.
func (p UserProfile) HasBadge(badgeID string) bool {
	for _, id := range p.Badges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// Update carries a partial profile change. Nil fields are left untouched.
type Update struct {
	Name     *string
	Age      *int
	Grade    *int
	Subjects []string
}
