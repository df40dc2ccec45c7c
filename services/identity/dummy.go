package idsvc

import (
	"context"

	"github.com/trezcool/skillshare/core/auth"
)

// DummyProvider returns canned tokens; meant for tests.
type DummyProvider struct {
	Token      auth.ProviderToken
	TokenErr   error
	Prof       auth.ProviderProfile
	ProfileErr error
}

var _ auth.IdentityProvider = (*DummyProvider)(nil)

func (p *DummyProvider) SignIn(context.Context) (auth.ProviderToken, error) {
	return p.Token, p.TokenErr
}

func (p *DummyProvider) Profile(context.Context, auth.ProviderToken) (auth.ProviderProfile, error) {
	return p.Prof, p.ProfileErr
}
