package dashboard

import (
	"strings"

	"github.com/trezcool/skillshare/core/user"
)

// SearchFilter narrows the user directory. Empty fields match everything;
// populated fields are all required to match.
type SearchFilter struct {
	Username  string
	Skill     string
	Location  string
	MinRating float64
}

func (f SearchFilter) IsEmpty() bool {
	return f.Username == "" && f.Skill == "" && f.Location == "" && f.MinRating <= 0
}

// Matches applies the filter to a single user. Text fields are
// case-insensitive substring matches; the skill term is checked against both
// of the user's skill lists.
func (f SearchFilter) Matches(u user.User) bool {
	if f.Username != "" && !containsFold(u.Username, f.Username) && !containsFold(u.FullName, f.Username) {
		return false
	}
	if f.Location != "" && !containsFold(u.Location.String, f.Location) {
		return false
	}
	if f.MinRating > 0 && u.Rating < f.MinRating {
		return false
	}
	if f.Skill != "" {
		found := false
		for _, s := range u.AllSkills() {
			if containsFold(s.Name, f.Skill) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterUsers returns the users matching the filter, preserving order. An
// empty filter is the identity.
func FilterUsers(users []user.User, f SearchFilter) []user.User {
	if f.IsEmpty() {
		return users
	}
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if f.Matches(u) {
			out = append(out, u)
		}
	}
	return out
}

// BrowsableUsers is the directory as the viewer sees it: everyone but
// themselves and anyone with nothing to teach.
func BrowsableUsers(users []user.User, viewerID int) []user.User {
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.ID != viewerID && u.HasOfferedSkills() {
			out = append(out, u)
		}
	}
	return out
}

// HasSkillMatch reports whether the teacher offers a skill the viewer wants,
// returning the first such offered skill. Matching is by name, never by id,
// since ids are scoped per user. On a mismatch the teacher's first offered
// skill comes back as a suggestion to add to the viewer's wanted list.
func HasSkillMatch(teacher, viewer user.User) (user.Skill, bool) {
	for _, offered := range teacher.OfferedSkills {
		for _, wanted := range viewer.WantedSkills {
			if user.SkillNamesEqual(offered.Name, wanted.Name) {
				return offered, true
			}
		}
	}
	if len(teacher.OfferedSkills) > 0 {
		return teacher.OfferedSkills[0], false
	}
	return user.Skill{}, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}
