package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/session"
	"github.com/trezcool/skillshare/core/user"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrCancelUnavailable = errors.New("pending requests can only be cancelled after 3 days")
)

// Approve accepts an incoming request. The backend creates the scheduled
// session, so the whole state is reloaded to pick it up.
func (svc *Service) Approve(ctx context.Context, st *State, requestID int, message string) error {
	return svc.respond(ctx, st, requestID, session.StatusApproved, message)
}

// Reject declines an incoming request with an optional message.
func (svc *Service) Reject(ctx context.Context, st *State, requestID int, message string) error {
	return svc.respond(ctx, st, requestID, session.StatusRejected, message)
}

func (svc *Service) respond(ctx context.Context, st *State, requestID int, status, message string) error {
	if findRequest(st.Incoming, requestID) < 0 {
		return ErrRequestNotFound
	}
	if _, err := svc.gw.RespondToRequest(ctx, requestID, status, message); err != nil {
		return errors.Wrap(err, "responding to request")
	}
	return svc.Refresh(ctx, st)
}

// Cancel withdraws one of the viewer's own pending requests. It is gated on
// the 3-day notice and on the user confirming.
func (svc *Service) Cancel(ctx context.Context, st *State, requestID int) error {
	idx := findRequest(st.Outgoing, requestID)
	if idx < 0 {
		return ErrRequestNotFound
	}
	if !st.Outgoing[idx].CanCancel(nowFunc()) {
		return ErrCancelUnavailable
	}
	if !svc.confirm.Confirm("Are you sure you want to cancel this session request?") {
		return nil
	}
	if err := svc.gw.CancelRequest(ctx, requestID); err != nil {
		return errors.Wrap(err, "cancelling request")
	}
	return svc.Refresh(ctx, st)
}

// MarkNotificationRead moves the notification to the read list immediately and
// reports the read to the backend in the background. A failed report is only
// logged; the optimistic local state stands.
func (svc *Service) MarkNotificationRead(st *State, notificationID int) {
	for i, n := range st.Unread {
		if n.ID != notificationID {
			continue
		}
		n.IsRead = true
		st.Unread = append(st.Unread[:i], st.Unread[i+1:]...)
		st.Read = append(st.Read, n)
		go func() {
			if err := svc.gw.MarkNotificationRead(context.Background(), notificationID); err != nil {
				svc.logger.Warn("could not mark notification read", "id", notificationID, "err", err)
			}
		}()
		return
	}
}

// AddOfferedSkill adds a skill to the viewer's teaching list and refreshes the
// profile from the backend's response.
func (svc *Service) AddOfferedSkill(ctx context.Context, st *State, skill user.NewSkill) error {
	return svc.addSkill(ctx, st, skill, svc.gw.AddOfferedSkill)
}

// AddWantedSkill adds a skill to the viewer's learning list. Unlike the
// offered side, a wanted skill must say what the user hopes to get out of it.
func (svc *Service) AddWantedSkill(ctx context.Context, st *State, skill user.NewSkill) error {
	if core.CleanString(skill.Description.String) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "description", Error: "this field is required"})
	}
	return svc.addSkill(ctx, st, skill, svc.gw.AddWantedSkill)
}

func (svc *Service) addSkill(
	ctx context.Context, st *State, skill user.NewSkill,
	add func(context.Context, int, user.NewSkill) (user.User, error),
) error {
	skill.Name = core.CleanString(skill.Name)
	if err := core.TranslateValidationError(core.Validate.Struct(&skill)); err != nil {
		return err
	}
	updated, err := add(ctx, st.CurrentUser.ID, skill)
	if err != nil {
		return errors.Wrap(err, "adding skill")
	}
	st.CurrentUser = updated
	return nil
}

// RemoveOfferedSkill deletes a skill from the viewer's teaching list after
// confirmation. Non-positive ids are ignored.
func (svc *Service) RemoveOfferedSkill(ctx context.Context, st *State, skillID int) error {
	return svc.removeSkill(ctx, st, skillID, svc.gw.RemoveOfferedSkill)
}

// RemoveWantedSkill deletes a skill from the viewer's learning list after
// confirmation.
func (svc *Service) RemoveWantedSkill(ctx context.Context, st *State, skillID int) error {
	return svc.removeSkill(ctx, st, skillID, svc.gw.RemoveWantedSkill)
}

func (svc *Service) removeSkill(
	ctx context.Context, st *State, skillID int,
	remove func(context.Context, int, int) error,
) error {
	if skillID <= 0 {
		return nil
	}
	if !svc.confirm.Confirm("Are you sure you want to remove this skill?") {
		return nil
	}
	if err := remove(ctx, st.CurrentUser.ID, skillID); err != nil {
		return errors.Wrap(err, "removing skill")
	}
	updated, err := svc.gw.User(ctx, st.CurrentUser.ID)
	if err != nil {
		return errors.Wrap(err, "reloading profile")
	}
	st.CurrentUser = updated
	return nil
}

func findRequest(reqs []RequestDetails, id int) int {
	for i, r := range reqs {
		if r.ID == id {
			return i
		}
	}
	return -1
}
