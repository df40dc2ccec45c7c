package meeting

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/session"
)

var (
	ErrNotTeacher        = errors.New("only the teacher can change the session status")
	ErrTerminalState     = errors.New("the session is already completed or cancelled")
	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrNoMeetingLink     = errors.New("this session has no meeting link")
)

// joinWindow is how close to the start the join button unlocks.
const joinWindow = 15 * time.Minute

// tickInterval drives the countdown label refresh.
const tickInterval = time.Minute

// copiedNotice is how long the copy confirmation shows.
const copiedNotice = 2 * time.Second

var nowFunc = time.Now

// JoinState is the countdown label and whether joining is unlocked.
type JoinState struct {
	Label   string
	CanJoin bool
}

// ComputeJoinState derives the countdown for a session start time. Inside the
// join window the remaining minutes round up so the label never reads zero
// before the start; outside it they round down.
func ComputeJoinState(scheduled, now time.Time) JoinState {
	diff := scheduled.Sub(now)
	if diff <= 0 {
		return JoinState{Label: "Session has started", CanJoin: true}
	}
	if diff <= joinWindow {
		mins := int(math.Ceil(diff.Minutes()))
		return JoinState{Label: fmt.Sprintf("Starts in %d minute(s)", mins), CanJoin: true}
	}
	total := int(diff.Minutes())
	if h := total / 60; h > 0 {
		return JoinState{Label: fmt.Sprintf("Starts in %dh %dm", h, total%60)}
	}
	return JoinState{Label: fmt.Sprintf("Starts in %d minutes", total)}
}

// Gateway is the slice of the backend surface the meeting card needs.
type Gateway interface {
	UpdateSessionStatus(ctx context.Context, id int, status string) (session.Session, error)
}

// Card drives one scheduled session's meeting view: the live countdown, the
// join and copy-link actions, and the teacher's status controls.
type Card struct {
	gw       Gateway
	clip     core.Clipboard
	opener   core.URLOpener
	logger   core.Logger
	viewerID int

	// onChange, when set, is invoked after every state mutation.
	onChange func()

	mu        sync.Mutex
	sess      session.Session
	join      JoinState
	copied    bool
	stop      chan struct{}
	copyTimer *time.Timer
}

func NewCard(gw Gateway, clip core.Clipboard, opener core.URLOpener, logger core.Logger, sess session.Session, viewerID int, onChange func()) *Card {
	c := &Card{
		gw:       gw,
		clip:     clip,
		opener:   opener,
		logger:   logger,
		viewerID: viewerID,
		onChange: onChange,
		sess:     sess,
	}
	c.join = ComputeJoinState(sess.ScheduledTime, nowFunc())
	return c
}

// Session returns the current session record.
func (c *Card) Session() session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// JoinState returns the current countdown state.
func (c *Card) JoinState() JoinState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.join
}

// Copied reports whether the copy confirmation is showing.
func (c *Card) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// IsTeacher reports whether the viewer owns the teacher controls.
func (c *Card) IsTeacher() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.TeacherID == c.viewerID
}

// StartCountdown recomputes the join state immediately and then once a
// minute until Stop is called.
func (c *Card) StartCountdown() {
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	c.refreshJoinState()
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.refreshJoinState()
			}
		}
	}()
}

// Stop halts the countdown and any pending copy-notice reset.
func (c *Card) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	if c.copyTimer != nil {
		c.copyTimer.Stop()
		c.copyTimer = nil
	}
}

func (c *Card) refreshJoinState() {
	c.mu.Lock()
	c.join = ComputeJoinState(c.sess.ScheduledTime, nowFunc())
	c.mu.Unlock()
	c.notify()
}

// Join opens the meeting link. A still-scheduled session moves to in-progress
// locally right away; the backend update runs in the background and a failure
// is only logged.
func (c *Card) Join(ctx context.Context) error {
	c.mu.Lock()
	url := c.sess.MeetingURL
	id := c.sess.ID
	wasScheduled := c.sess.Status == session.StatusScheduled
	c.mu.Unlock()

	if !url.Valid || url.String == "" {
		return ErrNoMeetingLink
	}
	if err := c.opener.Open(url.String); err != nil {
		return errors.Wrap(err, "opening meeting link")
	}

	if wasScheduled {
		c.mu.Lock()
		c.sess.Status = session.StatusInProgress
		c.mu.Unlock()
		c.notify()
		go func() {
			if _, err := c.gw.UpdateSessionStatus(context.Background(), id, session.StatusInProgress); err != nil {
				c.logger.Warn("could not mark session in progress", "id", id, "err", err)
			}
		}()
	}
	return nil
}

// CopyLink copies the meeting link and shows a confirmation for 2 seconds.
func (c *Card) CopyLink() error {
	c.mu.Lock()
	url := c.sess.MeetingURL
	c.mu.Unlock()
	if !url.Valid || url.String == "" {
		return ErrNoMeetingLink
	}
	if err := c.clip.WriteText(url.String); err != nil {
		return errors.Wrap(err, "copying meeting link")
	}

	c.mu.Lock()
	c.copied = true
	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	c.copyTimer = time.AfterFunc(copiedNotice, func() {
		c.mu.Lock()
		c.copied = false
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()
	c.notify()
	return nil
}

// Begin moves a scheduled session to in-progress. Teacher only.
func (c *Card) Begin(ctx context.Context) error {
	return c.transition(ctx, session.StatusInProgress, session.StatusScheduled)
}

// Complete moves an in-progress session to completed. Teacher only.
func (c *Card) Complete(ctx context.Context) error {
	return c.transition(ctx, session.StatusCompleted, session.StatusInProgress)
}

// Cancel cancels a scheduled session. Teacher only.
func (c *Card) Cancel(ctx context.Context) error {
	return c.transition(ctx, session.StatusCancelled, session.StatusScheduled)
}

func (c *Card) transition(ctx context.Context, to, from string) error {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess.TeacherID != c.viewerID {
		return ErrNotTeacher
	}
	if sess.IsTerminal() {
		return ErrTerminalState
	}
	if sess.Status != from {
		return ErrInvalidTransition
	}

	updated, err := c.gw.UpdateSessionStatus(ctx, sess.ID, to)
	if err != nil {
		return errors.Wrap(err, "updating session status")
	}
	c.mu.Lock()
	c.sess = updated
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Card) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
