package auth

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core"
)

// Keys persisted in the client store on successful auth (the localStorage
// contract of the web client).
const (
	KeyToken    = "token"
	KeyUserID   = "userId"
	KeyUsername = "username"
	KeyUser     = "user"

	// transient federated-calendar token, cleared once the session is final
	KeyCalendarToken  = "googleCalendarToken"
	KeyCalendarExpiry = "googleCalendarExpiry"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUsernameTaken    = errors.New("this username is already taken")
)

type (
	// Gateway is the slice of the backend surface the auth controller needs.
	Gateway interface {
		Login(ctx context.Context, username, password string) (AuthResult, error)
		Register(ctx context.Context, form RegisterForm) (AuthResult, error)
		GoogleLogin(ctx context.Context, gl GoogleLogin) (AuthResult, error)
		// CheckUsername returns nil when the username is available and an
		// *api.Error with status 409 when it is taken.
		CheckUsername(ctx context.Context, username string) error
		UpdateProfile(ctx context.Context, token string, userID int, upd ProfileUpdate) (ProfileUpdateResult, error)
	}

	Service struct {
		gw       Gateway
		store    core.KeyValueStore
		provider IdentityProvider
		logger   core.Logger
	}
)

var nowFunc = time.Now

func NewService(gw Gateway, store core.KeyValueStore, provider IdentityProvider, logger core.Logger) *Service {
	return &Service{gw: gw, store: store, provider: provider, logger: logger}
}

// Login exchanges plain credentials for a session and persists it.
func (svc *Service) Login(ctx context.Context, form LoginForm) (Session, error) {
	if err := form.Validate(); err != nil {
		return Session{}, err
	}
	res, err := svc.gw.Login(ctx, form.Username, form.Password)
	if err != nil {
		return Session{}, err
	}
	return svc.finalize(res)
}

// Register creates a fresh account and persists the resulting session.
func (svc *Service) Register(ctx context.Context, form RegisterForm) (Session, error) {
	if err := form.Validate(); err != nil {
		return Session{}, err
	}
	res, err := svc.gw.Register(ctx, form)
	if err != nil {
		return Session{}, err
	}
	return svc.finalize(res)
}

// GoogleSignIn runs the federated sign-in flow. When the backend already has a
// username on file the session is finalized directly; otherwise the returned
// PendingProfile must go through CompleteProfile before the session is usable.
func (svc *Service) GoogleSignIn(ctx context.Context) (Session, *PendingProfile, error) {
	tok, err := svc.provider.SignIn(ctx)
	if err != nil {
		return Session{}, nil, errors.Wrap(err, "federated sign-in")
	}

	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = nowFunc().Add(time.Hour)
	}
	if tok.AccessToken != "" {
		// held only until the session is finalized
		_ = svc.store.Set(KeyCalendarToken, tok.AccessToken)
		_ = svc.store.Set(KeyCalendarExpiry, strconv.FormatInt(expiry.UnixMilli(), 10))
	}

	res, err := svc.gw.GoogleLogin(ctx, GoogleLogin{
		IDToken:      tok.IDToken,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenExpiry:  expiry.UnixMilli(),
	})
	if err != nil {
		return Session{}, nil, err
	}

	if strings.TrimSpace(res.Username) != "" {
		sess, err := svc.finalize(res)
		if err != nil {
			return Session{}, nil, err
		}
		svc.clearCalendarToken()
		return sess, nil, nil
	}

	pending := &PendingProfile{
		Token:            res.Token,
		UserID:           res.UserID,
		ProviderUsername: res.Username,
		Prefill: CompleteProfileForm{
			Username: res.Username,
			FullName: res.FullName,
			Location: res.Location.String,
			Bio:      res.Bio.String,
		},
	}
	if svc.provider != nil {
		if prof, perr := svc.provider.Profile(ctx, tok); perr == nil {
			if pending.Prefill.FullName == "" {
				pending.Prefill.FullName = prof.FullName
			}
		}
	}
	return Session{}, pending, nil
}

// CompleteProfile submits the missing fields of a federated sign-up and
// finalizes the session exactly as plain login does. The backend may return a
// refreshed token; it is preferred over the pending one.
func (svc *Service) CompleteProfile(ctx context.Context, pending PendingProfile, form CompleteProfileForm) (Session, error) {
	if err := form.Validate(ctx, svc, pending.ProviderUsername); err != nil {
		return Session{}, err
	}

	upd := ProfileUpdate{
		Username: form.Username,
		FullName: form.FullName,
		Location: nullIfEmpty(form.Location),
		Bio:      nullIfEmpty(form.Bio),
		Password: strings.TrimSpace(form.Password),
	}
	res, err := svc.gw.UpdateProfile(ctx, pending.Token, pending.UserID, upd)
	if err != nil {
		return Session{}, err
	}

	final := res.AuthResult
	if final.Token == "" {
		final.Token = pending.Token
	}
	final.UserID = pending.UserID
	final.Username = form.Username

	sess, err := svc.finalize(final)
	if err != nil {
		return Session{}, err
	}
	svc.clearCalendarToken()
	return sess, nil
}

// Logout clears all persisted client state.
func (svc *Service) Logout() error {
	return svc.store.Clear()
}

// CurrentSession restores the persisted session, if any.
func (svc *Service) CurrentSession() (Session, error) {
	token, ok := svc.store.Get(KeyToken)
	if !ok || token == "" {
		return Session{}, ErrNotAuthenticated
	}
	rawID, ok := svc.store.Get(KeyUserID)
	if !ok {
		return Session{}, ErrNotAuthenticated
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return Session{}, ErrNotAuthenticated
	}
	uname, _ := svc.store.Get(KeyUsername)
	return Session{Token: token, UserID: id, Username: uname}, nil
}

// TokenExpiry peeks at the session token's exp claim without verifying the
// signature; the backend remains the authority on token validity.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return time.Time{}, errors.Wrap(err, "parsing session token")
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}, nil
	}
	return time.Unix(claims.ExpiresAt, 0), nil
}

// finalize persists the four session keys and returns the session context.
func (svc *Service) finalize(res AuthResult) (Session, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return Session{}, errors.Wrap(err, "encoding user")
	}
	if err := svc.store.Set(KeyToken, res.Token); err != nil {
		return Session{}, errors.Wrap(err, "persisting session")
	}
	_ = svc.store.Set(KeyUserID, strconv.Itoa(res.UserID))
	_ = svc.store.Set(KeyUsername, res.Username)
	_ = svc.store.Set(KeyUser, string(raw))
	return Session{Token: res.Token, UserID: res.UserID, Username: res.Username}, nil
}

func (svc *Service) clearCalendarToken() {
	_ = svc.store.Delete(KeyCalendarToken)
	_ = svc.store.Delete(KeyCalendarExpiry)
}

// ConsumeCalendarToken returns the transient calendar access token, if still
// valid, and removes it from the store.
func (svc *Service) ConsumeCalendarToken() (string, bool) {
	tok, ok := svc.store.Get(KeyCalendarToken)
	if !ok || tok == "" {
		return "", false
	}
	defer svc.clearCalendarToken()
	rawExp, ok := svc.store.Get(KeyCalendarExpiry)
	if !ok {
		return "", false
	}
	expMillis, err := strconv.ParseInt(rawExp, 10, 64)
	if err != nil || nowFunc().After(time.UnixMilli(expMillis)) {
		return "", false
	}
	return tok, true
}
