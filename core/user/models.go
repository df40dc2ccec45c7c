package user

import (
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// Skill levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
)

// UnknownName is the display label for a user that could not be resolved.
func UnknownName(id int) string {
	return "User #" + strconv.Itoa(id)
}

// Skill is one entry of a user's offered or wanted list. Ids are scoped to a
// single user's list: the same conceptual skill carries a different id in each
// list it appears in.
type Skill struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	Category    null.String `json:"category,omitempty"`
	Level       null.String `json:"level,omitempty"`
}

type Review struct {
	ID         int         `json:"id"`
	SessionID  int         `json:"sessionId"`
	ReviewerID int         `json:"reviewerId"`
	RevieweeID int         `json:"revieweeId"`
	Rating     int         `json:"rating"` // 1 - 5
	Comment    null.String `json:"comment,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type User struct {
	ID            int         `json:"id"`
	Username      string      `json:"username"`
	FullName      string      `json:"fullName"`
	Email         string      `json:"email"`
	Bio           null.String `json:"bio,omitempty"`
	Location      null.String `json:"location,omitempty"`
	Rating        float64     `json:"rating"` // 0 - 5
	TotalReviews  int         `json:"totalReviews"`
	OfferedSkills []Skill     `json:"offeredSkills"`
	WantedSkills  []Skill     `json:"wantedSkills"`
	Reviews       []Review    `json:"reviews,omitempty"`
}

// DisplayName returns the full name, falling back to the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// AllSkills returns the offered and wanted lists concatenated.
func (u User) AllSkills() []Skill {
	all := make([]Skill, 0, len(u.OfferedSkills)+len(u.WantedSkills))
	all = append(all, u.OfferedSkills...)
	all = append(all, u.WantedSkills...)
	return all
}

// SkillByID scans both of the user's skill lists for the given id.
func (u User) SkillByID(id int) (Skill, bool) {
	for _, s := range u.AllSkills() {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// WantedSkillByID scans the wanted list only.
func (u User) WantedSkillByID(id int) (Skill, bool) {
	for _, s := range u.WantedSkills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// HasOfferedSkills reports whether the user has anything to teach.
func (u User) HasOfferedSkills() bool { return len(u.OfferedSkills) > 0 }

// OffersSkillNamed reports whether the user offers a skill with this name.
func (u User) OffersSkillNamed(name string) bool {
	for _, s := range u.OfferedSkills {
		if SkillNamesEqual(s.Name, name) {
			return true
		}
	}
	return false
}

// SkillNamesEqual reports whether two skill names refer to the same conceptual
// skill. The backend does not deduplicate skills globally, so matching across
// users is by case-insensitive name only; homonyms collide and misspellings
// never match. Ids must never be compared across users.
func SkillNamesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NewSkill contains information needed to add a skill to one of the user's lists.
type NewSkill struct {
	Name        string      `json:"name" validate:"required"`
	Description null.String `json:"description"`
	Category    null.String `json:"category"`
	Level       null.String `json:"level,omitempty"`
}
