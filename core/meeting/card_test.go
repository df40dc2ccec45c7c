package meeting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/skillshare/core/session"
)

type noopLogger struct{}

func (noopLogger) Enable(bool)                        {}
func (noopLogger) Debug(string, ...interface{})       {}
func (noopLogger) Info(string, ...interface{})        {}
func (noopLogger) Warn(string, ...interface{})        {}
func (noopLogger) Error(string, ...interface{})       {}
func (noopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

type fakeGateway struct {
	mu        sync.Mutex
	updates   []string
	updateErr error
}

func (g *fakeGateway) UpdateSessionStatus(_ context.Context, id int, status string) (session.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.updateErr != nil {
		return session.Session{}, g.updateErr
	}
	g.updates = append(g.updates, status)
	return session.Session{ID: id, TeacherID: 1, LearnerID: 2, Status: status}, nil
}

func (g *fakeGateway) statuses() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.updates))
	copy(out, g.updates)
	return out
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, url)
	return nil
}

func TestComputeJoinState(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		scheduled time.Time
		expLabel  string
		expJoin   bool
	}{
		{"already started", now.Add(-10 * time.Minute), "Session has started", true},
		{"starting now", now, "Session has started", true},
		{"inside window rounds up", now.Add(14*time.Minute + 30*time.Second), "Starts in 15 minute(s)", true},
		{"whole minutes inside window", now.Add(5 * time.Minute), "Starts in 5 minute(s)", true},
		{"window edge", now.Add(15 * time.Minute), "Starts in 15 minute(s)", true},
		{"just outside window", now.Add(15*time.Minute + 30*time.Second), "Starts in 15 minutes", false},
		{"under an hour rounds down", now.Add(45*time.Minute + 59*time.Second), "Starts in 45 minutes", false},
		{"hours and minutes", now.Add(2*time.Hour + 20*time.Minute), "Starts in 2h 20m", false},
		{"exact hours", now.Add(3 * time.Hour), "Starts in 3h 0m", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeJoinState(tt.scheduled, now)
			if got.Label != tt.expLabel {
				t.Errorf("label: expected %q; got %q", tt.expLabel, got.Label)
			}
			if got.CanJoin != tt.expJoin {
				t.Errorf("canJoin: expected %v; got %v", tt.expJoin, got.CanJoin)
			}
		})
	}
}

func newTestCard(gw Gateway, sess session.Session, viewerID int) (*Card, *fakeClipboard, *fakeOpener) {
	clip := &fakeClipboard{}
	opener := &fakeOpener{}
	return NewCard(gw, clip, opener, noopLogger{}, sess, viewerID, nil), clip, opener
}

func scheduledSession() session.Session {
	return session.Session{
		ID:            7,
		TeacherID:     1,
		LearnerID:     2,
		Status:        session.StatusScheduled,
		ScheduledTime: time.Now().Add(5 * time.Minute),
		MeetingURL:    null.StringFrom("https://meet.example.com/abc-def"),
	}
}

func TestCardJoin(t *testing.T) {
	t.Run("opens link and advances status", func(t *testing.T) {
		gw := &fakeGateway{}
		card, _, opener := newTestCard(gw, scheduledSession(), 2)
		if err := card.Join(context.Background()); err != nil {
			t.Fatal(err)
		}
		if len(opener.opened) != 1 || opener.opened[0] != "https://meet.example.com/abc-def" {
			t.Errorf("unexpected opened urls %v", opener.opened)
		}
		if got := card.Session().Status; got != session.StatusInProgress {
			t.Errorf("expected optimistic in_progress; got %q", got)
		}
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if len(gw.statuses()) > 0 {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		if got := gw.statuses(); len(got) != 1 || got[0] != session.StatusInProgress {
			t.Errorf("expected backend update; got %v", got)
		}
	})

	t.Run("no link", func(t *testing.T) {
		sess := scheduledSession()
		sess.MeetingURL = null.String{}
		card, _, _ := newTestCard(&fakeGateway{}, sess, 2)
		if err := card.Join(context.Background()); !errors.Is(err, ErrNoMeetingLink) {
			t.Fatalf("expected ErrNoMeetingLink; got %v", err)
		}
	})

	t.Run("in-progress session does not re-update", func(t *testing.T) {
		gw := &fakeGateway{}
		sess := scheduledSession()
		sess.Status = session.StatusInProgress
		card, _, opener := newTestCard(gw, sess, 2)
		if err := card.Join(context.Background()); err != nil {
			t.Fatal(err)
		}
		if len(opener.opened) != 1 {
			t.Error("expected the link opened")
		}
		time.Sleep(50 * time.Millisecond)
		if got := gw.statuses(); len(got) != 0 {
			t.Errorf("expected no backend update; got %v", got)
		}
	})
}

func TestCardCopyLink(t *testing.T) {
	card, clip, _ := newTestCard(&fakeGateway{}, scheduledSession(), 2)
	defer card.Stop()

	if err := card.CopyLink(); err != nil {
		t.Fatal(err)
	}
	if clip.text != "https://meet.example.com/abc-def" {
		t.Errorf("unexpected clipboard %q", clip.text)
	}
	if !card.Copied() {
		t.Error("expected copy confirmation showing")
	}

	deadline := time.Now().Add(copiedNotice + 2*time.Second)
	for time.Now().Before(deadline) {
		if !card.Copied() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("copy confirmation never reset")
}

func TestCardTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("teacher lifecycle", func(t *testing.T) {
		gw := &fakeGateway{}
		card, _, _ := newTestCard(gw, scheduledSession(), 1)

		if err := card.Begin(ctx); err != nil {
			t.Fatal(err)
		}
		if got := card.Session().Status; got != session.StatusInProgress {
			t.Fatalf("expected in_progress; got %q", got)
		}
		if err := card.Complete(ctx); err != nil {
			t.Fatal(err)
		}
		if got := card.Session().Status; got != session.StatusCompleted {
			t.Fatalf("expected completed; got %q", got)
		}
		if got := gw.statuses(); len(got) != 2 {
			t.Errorf("expected two backend updates; got %v", got)
		}
	})

	t.Run("learner cannot transition", func(t *testing.T) {
		card, _, _ := newTestCard(&fakeGateway{}, scheduledSession(), 2)
		if err := card.Begin(ctx); !errors.Is(err, ErrNotTeacher) {
			t.Fatalf("expected ErrNotTeacher; got %v", err)
		}
	})

	t.Run("terminal sessions are frozen", func(t *testing.T) {
		sess := scheduledSession()
		sess.Status = session.StatusCompleted
		card, _, _ := newTestCard(&fakeGateway{}, sess, 1)
		if err := card.Cancel(ctx); !errors.Is(err, ErrTerminalState) {
			t.Fatalf("expected ErrTerminalState; got %v", err)
		}
	})

	t.Run("cannot skip in-progress", func(t *testing.T) {
		card, _, _ := newTestCard(&fakeGateway{}, scheduledSession(), 1)
		if err := card.Complete(ctx); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition; got %v", err)
		}
	})

	t.Run("cancel scheduled", func(t *testing.T) {
		card, _, _ := newTestCard(&fakeGateway{}, scheduledSession(), 1)
		if err := card.Cancel(ctx); err != nil {
			t.Fatal(err)
		}
		if got := card.Session().Status; got != session.StatusCancelled {
			t.Errorf("expected cancelled; got %q", got)
		}
	})

	t.Run("backend failure leaves state", func(t *testing.T) {
		gw := &fakeGateway{updateErr: errors.New("boom")}
		card, _, _ := newTestCard(gw, scheduledSession(), 1)
		if err := card.Begin(ctx); err == nil {
			t.Fatal("expected error")
		}
		if got := card.Session().Status; got != session.StatusScheduled {
			t.Errorf("expected status unchanged; got %q", got)
		}
	})
}

func TestCardCountdown(t *testing.T) {
	var (
		mu    sync.Mutex
		ticks int
	)
	card := NewCard(&fakeGateway{}, &fakeClipboard{}, &fakeOpener{}, noopLogger{}, scheduledSession(), 2, func() {
		mu.Lock()
		ticks++
		mu.Unlock()
	})
	card.StartCountdown()
	defer card.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := ticks
		mu.Unlock()
		if n >= 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	mu.Lock()
	n := ticks
	mu.Unlock()
	if n < 1 {
		t.Fatal("expected an immediate countdown tick")
	}
	if !card.JoinState().CanJoin {
		t.Error("session 5 minutes out must be joinable")
	}
}
