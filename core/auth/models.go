package auth

import (
	"context"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/skillshare/core"
)

// ProviderToken holds the tokens obtained from the federated identity
// provider, including a calendar-scoped access token when one was granted.
type ProviderToken struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// ProviderProfile is what the identity provider knows about the user, used to
// prefill the profile-completion form.
type ProviderProfile struct {
	Email    string
	FullName string
}

// IdentityProvider is any service that can run a federated sign-in flow
// (the OAuth popup analog) and describe the signed-in identity.
type IdentityProvider interface {
	SignIn(ctx context.Context) (ProviderToken, error)
	Profile(ctx context.Context, tok ProviderToken) (ProviderProfile, error)
}

// Session is the client-side session context established by a successful
// login, registration or federated sign-in.
type Session struct {
	Token    string
	UserID   int
	Username string
}

// AuthResult is the backend's response to any of the auth endpoints.
type AuthResult struct {
	Token    string      `json:"token"`
	UserID   int         `json:"userId"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	FullName string      `json:"fullName,omitempty"`
	Bio      null.String `json:"bio,omitempty"`
	Location null.String `json:"location,omitempty"`
}

// GoogleLogin is the payload for the federated-login endpoint.
type GoogleLogin struct {
	IDToken      string `json:"idToken"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenExpiry  int64  `json:"tokenExpiry"` // unix milliseconds
}

// ProfileUpdate is the payload for PUT /api/users/{id}.
type ProfileUpdate struct {
	Username string      `json:"username,omitempty"`
	FullName string      `json:"fullName,omitempty"`
	Location null.String `json:"location"`
	Bio      null.String `json:"bio"`
	Password string      `json:"password,omitempty"`
}

// ProfileUpdateResult is the updated profile; the backend may include a
// refreshed token when the username changed.
type ProfileUpdateResult struct {
	AuthResult
}

// PendingProfile is a federated session that cannot be used until the missing
// profile fields are collected.
type PendingProfile struct {
	Token  string
	UserID int
	// ProviderUsername is the backend-assigned username, if any; availability
	// checks are skipped when the candidate equals it.
	ProviderUsername string
	Prefill          CompleteProfileForm
}

// LoginForm collects plain credentials. No password strength check applies to
// plain login.
type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (f *LoginForm) Validate() error {
	f.Username = core.CleanString(f.Username)
	return core.TranslateValidationError(core.Validate.Struct(f))
}

// RegisterForm collects the fields for a fresh account.
type RegisterForm struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

func (f *RegisterForm) Validate() error {
	f.Username = core.CleanString(f.Username, true /* lower */)
	f.Email = core.CleanString(f.Email, true /* lower */)
	f.FullName = core.CleanString(f.FullName)
	return core.TranslateValidationError(core.Validate.Struct(f))
}

// CompleteProfileForm collects the fields missing after a first federated
// sign-in.
type CompleteProfileForm struct {
	FullName        string `json:"fullName" validate:"required"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
}

// Validate applies the form rules, then checks username availability against
// the backend unless the candidate is the provider-assigned username.
func (f *CompleteProfileForm) Validate(ctx context.Context, svc *Service, providerUsername string) error {
	f.FullName = core.CleanString(f.FullName)
	f.Username = core.CleanString(f.Username)
	if err := core.TranslateValidationError(core.Validate.Struct(f)); err != nil {
		return err
	}
	if providerUsername != "" && f.Username == providerUsername {
		return nil
	}
	switch svc.CheckUsernameAvailability(ctx, f.Username) {
	case AvailabilityTaken:
		return core.NewValidationError(ErrUsernameTaken, core.FieldError{Field: "username", Error: ErrUsernameTaken.Error()})
	default:
		// availability unknown is not a validation failure
		return nil
	}
}

// nullIfEmpty trims s and returns a null value when nothing remains.
func nullIfEmpty(s string) null.String {
	s = core.CleanString(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
