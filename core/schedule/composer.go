package schedule

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/user"
)

var (
	ErrSkillRequired    = errors.New("please select a skill")
	ErrUnknownSkill     = errors.New("the selected skill is not in your learning list")
	ErrTeacherRequired  = errors.New("please select a teacher")
	ErrDateTimeRequired = errors.New("please pick a date and time")
	ErrTimeInPast       = errors.New("the requested time must be in the future")
	ErrInsufficientLead = errors.New("sessions must be requested at least 1 hour in advance")
)

// minLeadTime is the shortest notice a teacher can be given.
const minLeadTime = time.Hour

// navigateDelay keeps the success message on screen before moving on.
const navigateDelay = 2 * time.Second

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	nowFunc   = time.Now
	sleepFunc = time.Sleep
)

// Form is the session-request composer's input. SkillID refers to the
// learner's wanted list; Date and TimeOfDay are the raw field values.
type Form struct {
	SkillID     int
	TeacherID   int
	Date        string // 2006-01-02
	TimeOfDay   string // 15:04
	Duration    int    // minutes
	SessionType string
	Location    string
	Notes       string
}

// SelectSkill sets the skill and drops a teacher that no longer fits.
// Non-positive ids are ignored.
func (f *Form) SelectSkill(id int, viewer user.User, directory []user.User) {
	if id <= 0 {
		return
	}
	f.SkillID = id
	skill, ok := viewer.WantedSkillByID(id)
	if !ok {
		f.TeacherID = 0
		return
	}
	f.ResetTeacherIfInvalid(TeachersFor(directory, viewer.ID, skill.Name))
}

// ResetTeacherIfInvalid clears the teacher selection when it is not among the
// eligible teachers.
func (f *Form) ResetTeacherIfInvalid(teachers []user.User) {
	for _, t := range teachers {
		if t.ID == f.TeacherID {
			return
		}
	}
	f.TeacherID = 0
}

// ScheduledTime combines the date and time fields in the given location.
func (f Form) ScheduledTime(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, f.Date+" "+f.TimeOfDay, loc)
}

// Validate checks the form in field order and reports the first failure.
func (f Form) Validate(viewer user.User, teachers []user.User, loc *time.Location) error {
	if f.SkillID <= 0 {
		return core.NewValidationError(ErrSkillRequired, core.FieldError{Field: "skill", Error: ErrSkillRequired.Error()})
	}
	if _, ok := viewer.WantedSkillByID(f.SkillID); !ok {
		return core.NewValidationError(ErrUnknownSkill, core.FieldError{Field: "skill", Error: ErrUnknownSkill.Error()})
	}
	if f.TeacherID <= 0 {
		return core.NewValidationError(ErrTeacherRequired, core.FieldError{Field: "teacher", Error: ErrTeacherRequired.Error()})
	}
	found := false
	for _, t := range teachers {
		if t.ID == f.TeacherID {
			found = true
			break
		}
	}
	if !found {
		return core.NewValidationError(ErrTeacherRequired, core.FieldError{Field: "teacher", Error: ErrTeacherRequired.Error()})
	}
	if f.Date == "" || f.TimeOfDay == "" {
		return core.NewValidationError(ErrDateTimeRequired, core.FieldError{Field: "scheduledTime", Error: ErrDateTimeRequired.Error()})
	}
	at, err := f.ScheduledTime(loc)
	if err != nil {
		return core.NewValidationError(ErrDateTimeRequired, core.FieldError{Field: "scheduledTime", Error: ErrDateTimeRequired.Error()})
	}
	now := nowFunc().In(loc)
	if !at.After(now) {
		return core.NewValidationError(ErrTimeInPast, core.FieldError{Field: "scheduledTime", Error: ErrTimeInPast.Error()})
	}
	if at.Sub(now) < minLeadTime {
		return core.NewValidationError(ErrInsufficientLead, core.FieldError{Field: "scheduledTime", Error: ErrInsufficientLead.Error()})
	}
	return nil
}

// TeachersFor lists the directory members, other than the viewer, who offer
// the named skill. Matching is by name since skill ids are scoped per user.
func TeachersFor(directory []user.User, viewerID int, skillName string) []user.User {
	out := make([]user.User, 0, len(directory))
	for _, u := range directory {
		if u.ID == viewerID {
			continue
		}
		if u.OffersSkillNamed(skillName) {
			out = append(out, u)
		}
	}
	return out
}

// EncodeLocal serializes a time with its local offset, the format the backend
// stores verbatim.
func EncodeLocal(t time.Time) string {
	return t.Format("2006-01-02T15:04:05-07:00")
}

// NewRequest is the payload for POST /api/session-requests.
type NewRequest struct {
	LearnerID     int         `json:"learnerId"`
	TeacherID     int         `json:"teacherId"`
	SkillID       int         `json:"skillId"`
	RequestedTime string      `json:"requestedTime"`
	Duration      int         `json:"duration"`
	SessionType   string      `json:"sessionType"`
	Location      null.String `json:"location"`
	Notes         null.String `json:"notes"`
}
