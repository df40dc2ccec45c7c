// Package fakeapi is an in-memory stand-in for the SkillShare backend, used
// by end-to-end tests and local development.
package fakeapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/skillshare/core/notification"
	"github.com/trezcool/skillshare/core/session"
	"github.com/trezcool/skillshare/core/user"
)

const tokenTTL = 24 * time.Hour

// GoogleAccount is a canned federated identity, keyed by the id token the
// client will present.
type GoogleAccount struct {
	Email    string
	FullName string
}

type Server struct {
	app    *echo.Echo
	secret []byte

	mu        sync.RWMutex
	nextID    int
	users     map[int]*user.User
	passwords map[int][]byte
	google    map[string]GoogleAccount // id token -> account
	requests  map[int]*session.Request
	sessions  map[int]*session.Session
	notifs    map[int]*notification.Notification
}

var _ http.Handler = (*Server)(nil)

func New(secret string) *Server {
	s := &Server{
		app:       echo.New(),
		secret:    []byte(secret),
		nextID:    1,
		users:     make(map[int]*user.User),
		passwords: make(map[int][]byte),
		google:    make(map[string]GoogleAccount),
		requests:  make(map[int]*session.Request),
		sessions:  make(map[int]*session.Session),
		notifs:    make(map[int]*notification.Notification),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	s.app.HideBanner = true

	g := s.app.Group("/api")
	g.POST("/auth/login", s.login)
	g.POST("/auth/register", s.register)
	g.POST("/auth/google-login", s.googleLogin)
	g.GET("/auth/check-username", s.checkUsername)

	jwtMW := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    s.secret,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(jwt.StandardClaims),
	})

	g.GET("/users", s.listUsers, jwtMW)
	g.GET("/users/:id", s.getUser, jwtMW)
	g.PUT("/users/:id", s.updateUser, jwtMW)
	g.POST("/users/:id/skills/:list", s.addSkill, jwtMW)
	g.DELETE("/users/:id/skills/:list/:skillId", s.removeSkill, jwtMW)

	g.POST("/session-requests", s.createRequest, jwtMW)
	g.GET("/session-requests/teacher/:id", s.listRequests("teacher"), jwtMW)
	g.GET("/session-requests/learner/:id", s.listRequests("learner"), jwtMW)
	g.POST("/session-requests/:id/approve", s.settleRequest(session.StatusApproved), jwtMW)
	g.POST("/session-requests/:id/reject", s.settleRequest(session.StatusRejected), jwtMW)
	g.POST("/session-requests/:id/cancel", s.settleRequest(session.StatusCancelled), jwtMW)

	g.GET("/sessions/teacher/:id", s.listSessions("teacher"), jwtMW)
	g.GET("/sessions/learner/:id", s.listSessions("learner"), jwtMW)
	g.PUT("/sessions/:id/status", s.updateSessionStatus, jwtMW)

	g.GET("/notifications/user/:id", s.listNotifications, jwtMW)
	g.PUT("/notifications/:id/read", s.markNotificationRead, jwtMW)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

// --- seeding helpers ---

// AddUser registers a user with the given password and returns the stored
// record with its assigned id.
func (s *Server) AddUser(u user.User, password string) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = &u
	if password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		s.passwords[u.ID] = hash
	}
	return u
}

// AddGoogleAccount cans a federated identity for the given id token.
func (s *Server) AddGoogleAccount(idToken string, acct GoogleAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.google[idToken] = acct
}

// AddRequest stores a session request, assigning an id.
func (s *Server) AddRequest(r session.Request) session.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.requests[r.ID] = &r
	return r
}

// AddSession stores a scheduled session, assigning an id.
func (s *Server) AddSession(sess session.Session) session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = s.nextID
	s.nextID++
	s.sessions[sess.ID] = &sess
	return sess
}

// AddNotification stores a notification, assigning an id.
func (s *Server) AddNotification(n notification.Notification) notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID
	s.nextID++
	s.notifs[n.ID] = &n
	return n
}

// TokenFor mints a valid session token for the user.
func (s *Server) TokenFor(userID int) string {
	tok, _ := s.generateToken(userID)
	return tok
}

// Notifications returns the stored notifications for a user.
func (s *Server) Notifications(userID int) []notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []notification.Notification
	for _, n := range s.notifs {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out
}

// Request returns a stored request by id.
func (s *Server) Request(id int) (session.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.requests[id]; ok {
		return *r, true
	}
	return session.Request{}, false
}

// Session returns a stored session by id.
func (s *Server) Session(id int) (session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return *sess, true
	}
	return session.Session{}, false
}

// --- internals ---

func (s *Server) generateToken(userID int) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// currentUserID extracts the authenticated user from the request token.
func currentUserID(ctx echo.Context) (int, error) {
	token, ok := ctx.Get("userToken").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "bad claims")
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "bad subject")
	}
	return id, nil
}

func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

