package fakeapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/skillshare/core/auth"
	"github.com/trezcool/skillshare/core/user"
)

func (s *Server) authResult(u user.User) (auth.AuthResult, error) {
	token, err := s.generateToken(u.ID)
	if err != nil {
		return auth.AuthResult{}, echo.NewHTTPError(http.StatusInternalServerError, "signing token")
	}
	return auth.AuthResult{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Bio:      u.Bio,
		Location: u.Location,
	}, nil
}

func (s *Server) login(ctx echo.Context) error {
	var form auth.LoginForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s.mu.RLock()
	var found *user.User
	for _, u := range s.users {
		if strings.EqualFold(u.Username, form.Username) {
			found = u
			break
		}
	}
	var hash []byte
	if found != nil {
		hash = s.passwords[found.ID]
	}
	s.mu.RUnlock()

	if found == nil || bcrypt.CompareHashAndPassword(hash, []byte(form.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	res, err := s.authResult(*found)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) register(ctx echo.Context) error {
	var form auth.RegisterForm
	if err := ctx.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if form.Username == "" || form.Email == "" || form.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	s.mu.Lock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, form.Username) || strings.EqualFold(u.Email, form.Email) {
			s.mu.Unlock()
			return echo.NewHTTPError(http.StatusConflict, "username or email already taken")
		}
	}
	u := user.User{
		ID:       s.nextID,
		Username: form.Username,
		Email:    form.Email,
		FullName: form.FullName,
	}
	s.nextID++
	s.users[u.ID] = &u
	hashed, _ := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.MinCost)
	s.passwords[u.ID] = hashed
	s.mu.Unlock()

	res, err := s.authResult(u)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (s *Server) googleLogin(ctx echo.Context) error {
	var body auth.GoogleLogin
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	acct, ok := s.google[body.IDToken]
	if !ok {
		s.mu.Unlock()
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown id token")
	}
	var found *user.User
	for _, u := range s.users {
		if strings.EqualFold(u.Email, acct.Email) {
			found = u
			break
		}
	}
	if found == nil {
		// first federated sign-in: provision a user with no username yet
		u := user.User{ID: s.nextID, Email: acct.Email, FullName: acct.FullName}
		s.nextID++
		s.users[u.ID] = &u
		found = &u
	}
	res, err := s.authResult(*found)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (s *Server) checkUsername(ctx echo.Context) error {
	uname := ctx.QueryParam("username")
	if uname == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing username")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, uname) {
			return echo.NewHTTPError(http.StatusConflict, "this username is already taken")
		}
	}
	return ctx.NoContent(http.StatusOK)
}

func (s *Server) updateUser(ctx echo.Context) error {
	viewerID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if id != viewerID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot update another user")
	}

	var upd auth.ProfileUpdate
	if err = ctx.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	s.mu.Lock()
	u, ok := s.users[id]
	if !ok {
		s.mu.Unlock()
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	if upd.Username != "" {
		for _, other := range s.users {
			if other.ID != id && strings.EqualFold(other.Username, upd.Username) {
				s.mu.Unlock()
				return echo.NewHTTPError(http.StatusConflict, "this username is already taken")
			}
		}
		u.Username = upd.Username
	}
	if upd.FullName != "" {
		u.FullName = upd.FullName
	}
	u.Location = upd.Location
	u.Bio = upd.Bio
	if upd.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.MinCost)
		s.passwords[id] = hashed
	}
	updated := *u
	s.mu.Unlock()

	// a username change invalidates the old token, so issue a fresh one
	res, err := s.authResult(updated)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, auth.ProfileUpdateResult{AuthResult: res})
}
