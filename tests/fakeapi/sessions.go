package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/skillshare/core/notification"
	"github.com/trezcool/skillshare/core/schedule"
	"github.com/trezcool/skillshare/core/session"
)

func (s *Server) createRequest(ctx echo.Context) error {
	learnerID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	var form schedule.NewRequest
	if err = ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if form.TeacherID <= 0 || form.SkillID <= 0 || form.RequestedTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if form.LearnerID != learnerID {
		return echo.NewHTTPError(http.StatusForbidden, "learnerId does not match the session holder")
	}
	at, err := time.Parse("2006-01-02T15:04:05-07:00", form.RequestedTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requestedTime")
	}

	s.mu.Lock()
	if _, ok := s.users[form.TeacherID]; !ok {
		s.mu.Unlock()
		return echo.NewHTTPError(http.StatusNotFound, "teacher not found")
	}
	req := session.Request{
		ID:            s.nextID,
		LearnerID:     learnerID,
		TeacherID:     form.TeacherID,
		SkillID:       form.SkillID,
		RequestedTime: at,
		Duration:      form.Duration,
		SessionType:   form.SessionType,
		Location:      form.Location,
		Notes:         form.Notes,
		Status:        session.StatusPending,
		CreatedAt:     time.Now(),
	}
	s.nextID++
	s.requests[req.ID] = &req
	learnerName := s.users[learnerID].DisplayName()
	s.notify(form.TeacherID, notification.TypeSessionRequest, "New session request",
		fmt.Sprintf("%s requested a session", learnerName), req.ID)
	s.mu.Unlock()

	return ctx.JSON(http.StatusCreated, req)
}

func (s *Server) listRequests(role string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := currentUserID(ctx); err != nil {
			return err
		}
		userID, err := pathID(ctx)
		if err != nil {
			return err
		}
		s.mu.RLock()
		out := make([]session.Request, 0)
		for _, r := range s.requests {
			if (role == "teacher" && r.TeacherID == userID) ||
				(role == "learner" && r.LearnerID == userID) {
				out = append(out, *r)
			}
		}
		s.mu.RUnlock()
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return ctx.JSON(http.StatusOK, out)
	}
}

func (s *Server) settleRequest(status string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		viewerID, err := currentUserID(ctx)
		if err != nil {
			return err
		}
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		message := ctx.QueryParam("message")

		s.mu.Lock()
		defer s.mu.Unlock()
		req, ok := s.requests[id]
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "request not found")
		}
		if req.IsTerminal() {
			return echo.NewHTTPError(http.StatusConflict, "request already settled")
		}

		switch status {
		case session.StatusApproved, session.StatusRejected:
			if req.TeacherID != viewerID {
				return echo.NewHTTPError(http.StatusForbidden, "only the teacher can respond")
			}
		case session.StatusCancelled:
			if req.LearnerID != viewerID {
				return echo.NewHTTPError(http.StatusForbidden, "only the learner can cancel")
			}
		}

		req.Status = status
		req.UpdatedAt = null.TimeFrom(time.Now())
		if message != "" {
			req.ResponseMessage = null.StringFrom(message)
		}

		if status == session.StatusApproved {
			sess := session.Session{
				ID:            s.nextID,
				TeacherID:     req.TeacherID,
				LearnerID:     req.LearnerID,
				SkillID:       req.SkillID,
				ScheduledTime: req.RequestedTime,
				Duration:      req.Duration,
				Status:        session.StatusScheduled,
				Location:      req.Location,
				SessionType:   null.StringFrom(req.SessionType),
				Notes:         req.Notes,
			}
			s.nextID++
			if req.SessionType == session.TypeVirtual {
				meetingID := uuid.New().String()
				sess.MeetingID = null.StringFrom(meetingID)
				sess.MeetingURL = null.StringFrom("https://meet.google.com/" + meetingID)
			}
			s.sessions[sess.ID] = &sess
			s.notify(req.LearnerID, notification.TypeRequestApproved, "Request approved",
				"Your session request was approved", sess.ID)
		} else if status == session.StatusRejected {
			s.notify(req.LearnerID, notification.TypeRequestRejected, "Request declined",
				"Your session request was declined", req.ID)
		}
		return ctx.JSON(http.StatusOK, *req)
	}
}

func (s *Server) listSessions(role string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if _, err := currentUserID(ctx); err != nil {
			return err
		}
		userID, err := pathID(ctx)
		if err != nil {
			return err
		}
		s.mu.RLock()
		out := make([]session.Session, 0)
		for _, sess := range s.sessions {
			if (role == "teacher" && sess.TeacherID == userID) ||
				(role == "learner" && sess.LearnerID == userID) {
				out = append(out, *sess)
			}
		}
		s.mu.RUnlock()
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return ctx.JSON(http.StatusOK, out)
	}
}

func (s *Server) updateSessionStatus(ctx echo.Context) error {
	viewerID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	status := ctx.QueryParam("status")
	switch status {
	case session.StatusInProgress, session.StatusCompleted, session.StatusCancelled:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	if sess.TeacherID != viewerID && sess.LearnerID != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "not a participant")
	}
	if sess.IsTerminal() {
		return echo.NewHTTPError(http.StatusConflict, "session already settled")
	}
	sess.Status = status
	return ctx.JSON(http.StatusOK, *sess)
}

func (s *Server) listNotifications(ctx echo.Context) error {
	if _, err := currentUserID(ctx); err != nil {
		return err
	}
	userID, err := pathID(ctx)
	if err != nil {
		return err
	}
	s.mu.RLock()
	out := make([]notification.Notification, 0)
	for _, n := range s.notifs {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return ctx.JSON(http.StatusOK, out)
}

func (s *Server) markNotificationRead(ctx echo.Context) error {
	viewerID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifs[id]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	if n.UserID != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "not your notification")
	}
	n.IsRead = true
	return ctx.NoContent(http.StatusOK)
}

// notify appends a notification; callers hold the lock.
func (s *Server) notify(userID int, typ, title, message string, refID int) {
	n := &notification.Notification{
		ID:          s.nextID,
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        typ,
		ReferenceID: refID,
		CreatedAt:   time.Now(),
	}
	s.nextID++
	s.notifs[n.ID] = n
}
