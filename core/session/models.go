package session

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Request statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Session statuses
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Session types
const (
	TypeVirtual  = "virtual"
	TypeInPerson = "in_person"
)

// cancellationNotice is the minimum age a pending request must reach before
// the learner may withdraw it.
const cancellationNotice = 3 * 24 * time.Hour

// Request is a learner's proposal to a teacher for a specific skill, time and
// modality, pending the teacher's approval.
type Request struct {
	ID              int         `json:"id"`
	LearnerID       int         `json:"learnerId"`
	TeacherID       int         `json:"teacherId"`
	SkillID         int         `json:"skillId"`
	RequestedTime   time.Time   `json:"requestedTime"`
	Duration        int         `json:"duration"` // minutes
	SessionType     string      `json:"sessionType"`
	Location        null.String `json:"location"`
	Notes           null.String `json:"notes"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       null.Time   `json:"updatedAt,omitempty"`
	ResponseMessage null.String `json:"responseMessage,omitempty"`
}

func (r Request) IsPending() bool { return r.Status == StatusPending }

// IsTerminal reports whether the request can no longer change status.
func (r Request) IsTerminal() bool {
	switch r.Status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether the learner-side cancel action is available: the
// request must still be pending and at least 3 days old. Requests with no
// recorded creation time are cancellable.
func (r Request) CanCancel(now time.Time) bool {
	if !r.IsPending() {
		return false
	}
	if r.CreatedAt.IsZero() {
		return true
	}
	return now.Sub(r.CreatedAt) >= cancellationNotice
}

// Session is a concrete scheduled meeting, created server-side when a request
// is approved.
type Session struct {
	ID            int         `json:"id"`
	TeacherID     int         `json:"teacherId"`
	LearnerID     int         `json:"learnerId"`
	SkillID       int         `json:"skillId"`
	ScheduledTime time.Time   `json:"scheduledTime"`
	Duration      int         `json:"duration"` // minutes
	Status        string      `json:"status"`
	Location      null.String `json:"location,omitempty"`
	SessionType   null.String `json:"sessionType,omitempty"`
	MeetingURL    null.String `json:"meetingUrl,omitempty"`
	MeetingID     null.String `json:"meetingId,omitempty"`
	Notes         null.String `json:"notes,omitempty"`
}

func (s Session) IsVirtual() bool { return s.SessionType.String == TypeVirtual }

// IsTerminal reports whether the session can no longer change status.
func (s Session) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}
