package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/notification"
	"github.com/trezcool/skillshare/core/session"
	"github.com/trezcool/skillshare/core/user"
)

// Gateway is the slice of the backend surface the dashboard needs.
type Gateway interface {
	User(ctx context.Context, id int) (user.User, error)
	Users(ctx context.Context) ([]user.User, error)
	IncomingRequests(ctx context.Context, userID int) ([]session.Request, error)
	OutgoingRequests(ctx context.Context, userID int) ([]session.Request, error)
	TeacherSessions(ctx context.Context, userID int) ([]session.Session, error)
	LearnerSessions(ctx context.Context, userID int) ([]session.Session, error)
	Notifications(ctx context.Context, userID int) ([]notification.Notification, error)
	RespondToRequest(ctx context.Context, id int, status, message string) (session.Request, error)
	CancelRequest(ctx context.Context, id int) error
	MarkNotificationRead(ctx context.Context, id int) error
	AddOfferedSkill(ctx context.Context, userID int, skill user.NewSkill) (user.User, error)
	AddWantedSkill(ctx context.Context, userID int, skill user.NewSkill) (user.User, error)
	RemoveOfferedSkill(ctx context.Context, userID, skillID int) error
	RemoveWantedSkill(ctx context.Context, userID, skillID int) error
}

// RequestDetails is a request decorated with the display names the raw record
// lacks.
type RequestDetails struct {
	session.Request
	SkillName   string
	LearnerName string
	TeacherName string
}

// State is everything the dashboard shows, loaded in one shot and mutated in
// place by the actions.
type State struct {
	CurrentUser user.User
	Users       []user.User
	Incoming    []RequestDetails
	Outgoing    []RequestDetails
	Sessions    []session.Session
	Unread      []notification.Notification
	Read        []notification.Notification
}

type Service struct {
	gw      Gateway
	confirm core.Confirmer
	logger  core.Logger
}

var nowFunc = time.Now

func NewService(gw Gateway, confirm core.Confirmer, logger core.Logger) *Service {
	return &Service{gw: gw, confirm: confirm, logger: logger}
}

// Load fetches everything the dashboard needs for the given user. The profile
// itself is required; each of the remaining slices degrades to empty on
// failure so one bad endpoint does not blank the whole screen.
func (svc *Service) Load(ctx context.Context, userID int) (*State, error) {
	me, err := svc.gw.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := &State{CurrentUser: me}

	var (
		wg       sync.WaitGroup
		users    []user.User
		incoming []session.Request
		outgoing []session.Request
		teaching []session.Session
		learning []session.Session
		notifs   []notification.Notification
	)
	fetch := func(what string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				svc.logger.Warn("dashboard load degraded", "what", what, "err", err)
			}
		}()
	}
	fetch("users", func() (err error) {
		users, err = svc.gw.Users(ctx)
		return
	})
	fetch("incoming requests", func() (err error) {
		incoming, err = svc.gw.IncomingRequests(ctx, userID)
		return
	})
	fetch("outgoing requests", func() (err error) {
		outgoing, err = svc.gw.OutgoingRequests(ctx, userID)
		return
	})
	fetch("teaching sessions", func() (err error) {
		teaching, err = svc.gw.TeacherSessions(ctx, userID)
		return
	})
	fetch("learning sessions", func() (err error) {
		learning, err = svc.gw.LearnerSessions(ctx, userID)
		return
	})
	fetch("notifications", func() (err error) {
		notifs, err = svc.gw.Notifications(ctx, userID)
		return
	})
	wg.Wait()

	st.Users = users
	st.Sessions = append(teaching, learning...)
	st.Unread, st.Read = notification.Partition(notifs)

	cache := newUserCache(svc, st.CurrentUser, users)
	st.Incoming = svc.enrichAll(ctx, cache, &st.CurrentUser, incoming)
	st.Outgoing = svc.enrichAll(ctx, cache, &st.CurrentUser, outgoing)
	return st, nil
}

// Refresh reloads the state in place.
func (svc *Service) Refresh(ctx context.Context, st *State) error {
	fresh, err := svc.Load(ctx, st.CurrentUser.ID)
	if err != nil {
		return err
	}
	*st = *fresh
	return nil
}

// userCache resolves users by id, falling back to the backend for ids absent
// from the directory listing.
type userCache struct {
	svc   *Service
	byID  map[int]user.User
	stale map[int]bool // ids that already failed; do not refetch
}

func newUserCache(svc *Service, me user.User, users []user.User) *userCache {
	byID := make(map[int]user.User, len(users)+1)
	for _, u := range users {
		byID[u.ID] = u
	}
	byID[me.ID] = me
	return &userCache{svc: svc, byID: byID, stale: make(map[int]bool)}
}

func (c *userCache) get(ctx context.Context, id int) (user.User, bool) {
	if u, ok := c.byID[id]; ok {
		return u, true
	}
	if c.stale[id] {
		return user.User{}, false
	}
	u, err := c.svc.gw.User(ctx, id)
	if err != nil {
		c.svc.logger.Warn("could not resolve user", "id", id, "err", err)
		c.stale[id] = true
		return user.User{}, false
	}
	c.byID[id] = u
	return u, true
}

func (svc *Service) enrichAll(ctx context.Context, cache *userCache, me *user.User, reqs []session.Request) []RequestDetails {
	out := make([]RequestDetails, 0, len(reqs))
	for _, r := range reqs {
		var learner, teacher *user.User
		if u, ok := cache.get(ctx, r.LearnerID); ok {
			learner = &u
		}
		if u, ok := cache.get(ctx, r.TeacherID); ok {
			teacher = &u
		}
		out = append(out, EnrichRequest(r, learner, teacher, me))
	}
	return out
}
