package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/session"
	"github.com/trezcool/skillshare/core/user"
)

// Gateway is the slice of the backend surface the composer needs.
type Gateway interface {
	CreateRequest(ctx context.Context, req NewRequest) (session.Request, error)
}

type Service struct {
	gw     Gateway
	logger core.Logger
	loc    *time.Location
}

func NewService(gw Gateway, logger core.Logger) *Service {
	return &Service{gw: gw, logger: logger, loc: time.Local}
}

// Submit validates the form against the viewer's learning list and the
// eligible teachers, posts the request, then holds briefly so the success
// notice is seen before navigation.
func (svc *Service) Submit(ctx context.Context, viewer user.User, directory []user.User, f Form) (session.Request, error) {
	var teachers []user.User
	if skill, ok := viewer.WantedSkillByID(f.SkillID); ok {
		teachers = TeachersFor(directory, viewer.ID, skill.Name)
	}
	if err := f.Validate(viewer, teachers, svc.loc); err != nil {
		return session.Request{}, err
	}

	at, err := f.ScheduledTime(svc.loc)
	if err != nil {
		return session.Request{}, err
	}

	payload := NewRequest{
		LearnerID:     viewer.ID,
		TeacherID:     f.TeacherID,
		SkillID:       f.SkillID,
		RequestedTime: EncodeLocal(at),
		Duration:      f.Duration,
		SessionType:   f.SessionType,
	}
	if f.SessionType != session.TypeVirtual {
		if loc := core.CleanString(f.Location); loc != "" {
			payload.Location = null.StringFrom(loc)
		}
	}
	if notes := core.CleanString(f.Notes); notes != "" {
		payload.Notes = null.StringFrom(notes)
	}

	req, err := svc.gw.CreateRequest(ctx, payload)
	if err != nil {
		return session.Request{}, errors.Wrap(err, "creating session request")
	}
	svc.logger.Info("session request created", "id", req.ID, "teacher", req.TeacherID)

	sleepFunc(navigateDelay)
	return req, nil
}
