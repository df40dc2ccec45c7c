package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core/meeting"
	"github.com/trezcool/skillshare/core/schedule"
	"github.com/trezcool/skillshare/core/session"
)

var (
	_ schedule.Gateway = (*Client)(nil)
	_ meeting.Gateway  = (*Client)(nil)
)

func (c *Client) CreateRequest(ctx context.Context, req schedule.NewRequest) (session.Request, error) {
	var res session.Request
	err := c.do(ctx, http.MethodPost, "/api/session-requests", nil, req, &res)
	return res, err
}

// IncomingRequests lists the requests addressed to the user as a teacher.
func (c *Client) IncomingRequests(ctx context.Context, userID int) ([]session.Request, error) {
	return c.requests(ctx, "teacher", userID)
}

// OutgoingRequests lists the requests the user sent as a learner.
func (c *Client) OutgoingRequests(ctx context.Context, userID int) ([]session.Request, error) {
	return c.requests(ctx, "learner", userID)
}

func (c *Client) requests(ctx context.Context, role string, userID int) ([]session.Request, error) {
	var res []session.Request
	err := c.do(ctx, http.MethodGet, "/api/session-requests/"+role+"/"+strconv.Itoa(userID), nil, nil, &res)
	return res, err
}

// RespondToRequest settles a pending request through the status-specific
// endpoint; the optional message rides along as a query parameter.
func (c *Client) RespondToRequest(ctx context.Context, id int, status, message string) (session.Request, error) {
	var action string
	switch status {
	case session.StatusApproved:
		action = "approve"
	case session.StatusRejected:
		action = "reject"
	case session.StatusCancelled:
		action = "cancel"
	default:
		return session.Request{}, errors.Errorf("unsupported request status %q", status)
	}
	var q url.Values
	if message != "" {
		q = url.Values{"message": {message}}
	}
	var res session.Request
	err := c.do(ctx, http.MethodPost, "/api/session-requests/"+strconv.Itoa(id)+"/"+action, q, nil, &res)
	return res, err
}

func (c *Client) CancelRequest(ctx context.Context, id int) error {
	_, err := c.RespondToRequest(ctx, id, session.StatusCancelled, "")
	return err
}

// TeacherSessions lists the sessions the user teaches.
func (c *Client) TeacherSessions(ctx context.Context, userID int) ([]session.Session, error) {
	return c.sessions(ctx, "teacher", userID)
}

// LearnerSessions lists the sessions the user attends.
func (c *Client) LearnerSessions(ctx context.Context, userID int) ([]session.Session, error) {
	return c.sessions(ctx, "learner", userID)
}

func (c *Client) sessions(ctx context.Context, role string, userID int) ([]session.Session, error) {
	var res []session.Session
	err := c.do(ctx, http.MethodGet, "/api/sessions/"+role+"/"+strconv.Itoa(userID), nil, nil, &res)
	return res, err
}

// Sessions concatenates the teaching and learning sides.
func (c *Client) Sessions(ctx context.Context, userID int) ([]session.Session, error) {
	teaching, err := c.TeacherSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	learning, err := c.LearnerSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(teaching, learning...), nil
}

func (c *Client) UpdateSessionStatus(ctx context.Context, id int, status string) (session.Session, error) {
	var res session.Session
	q := url.Values{"status": {status}}
	err := c.do(ctx, http.MethodPut, "/api/sessions/"+strconv.Itoa(id)+"/status", q, nil, &res)
	return res, err
}
