package dashboard

import (
	"github.com/trezcool/skillshare/core/session"
	"github.com/trezcool/skillshare/core/user"
)

// UnknownSkill is the display label when a request's skill id resolves in none
// of the available skill lists.
const UnknownSkill = "Unknown Skill"

// EnrichRequest resolves a request's skill and participant names for display.
// Skill ids are scoped per user, so the lookup tries the learner's lists
// first, then the teacher's, then the viewer's own, before giving up.
// Unresolvable participants get a placeholder name.
func EnrichRequest(r session.Request, learner, teacher, viewer *user.User) RequestDetails {
	d := RequestDetails{Request: r, SkillName: UnknownSkill}
	for _, u := range []*user.User{learner, teacher, viewer} {
		if u == nil {
			continue
		}
		if s, ok := u.SkillByID(r.SkillID); ok {
			d.SkillName = s.Name
			break
		}
	}

	d.LearnerName = user.UnknownName(r.LearnerID)
	if learner != nil {
		d.LearnerName = learner.DisplayName()
	} else if viewer != nil && viewer.ID == r.LearnerID {
		d.LearnerName = viewer.DisplayName()
	}

	d.TeacherName = user.UnknownName(r.TeacherID)
	if teacher != nil {
		d.TeacherName = teacher.DisplayName()
	} else if viewer != nil && viewer.ID == r.TeacherID {
		d.TeacherName = viewer.DisplayName()
	}
	return d
}
