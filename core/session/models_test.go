package session

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"
)

func TestRequestCanCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   string
		age      time.Duration
		zeroTime bool
		expected bool
	}{
		{name: "pending and old enough", status: StatusPending, age: 3 * 24 * time.Hour, expected: true},
		{name: "pending but too fresh", status: StatusPending, age: 3*24*time.Hour - time.Minute, expected: false},
		{name: "pending with no creation time", status: StatusPending, zeroTime: true, expected: true},
		{name: "approved", status: StatusApproved, age: 10 * 24 * time.Hour, expected: false},
		{name: "rejected", status: StatusRejected, age: 10 * 24 * time.Hour, expected: false},
		{name: "already cancelled", status: StatusCancelled, age: 10 * 24 * time.Hour, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Request{Status: tt.status}
			if !tt.zeroTime {
				r.CreatedAt = now.Add(-tt.age)
			}
			if got := r.CanCancel(now); got != tt.expected {
				t.Errorf("CanCancel() = %v; expected %v", got, tt.expected)
			}
		})
	}
}

func TestRequestIsTerminal(t *testing.T) {
	for status, expected := range map[string]bool{
		StatusPending:   false,
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	} {
		if got := (Request{Status: status}).IsTerminal(); got != expected {
			t.Errorf("IsTerminal(%s) = %v; expected %v", status, got, expected)
		}
	}
}

func TestSessionStates(t *testing.T) {
	s := Session{Status: StatusScheduled, SessionType: null.StringFrom(TypeVirtual)}
	if !s.IsVirtual() {
		t.Error("expected virtual")
	}
	if s.IsTerminal() {
		t.Error("scheduled is not terminal")
	}

	s.SessionType = null.StringFrom(TypeInPerson)
	if s.IsVirtual() {
		t.Error("expected in person")
	}
	s.SessionType = null.String{}
	if s.IsVirtual() {
		t.Error("unset type is not virtual")
	}

	for status, expected := range map[string]bool{
		StatusScheduled:  false,
		StatusInProgress: false,
		StatusCompleted:  true,
		StatusCancelled:  true,
	} {
		if got := (Session{Status: status}).IsTerminal(); got != expected {
			t.Errorf("IsTerminal(%s) = %v; expected %v", status, got, expected)
		}
	}
}
