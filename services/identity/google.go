// Package idsvc provides IdentityProvider implementations for federated
// sign-in.
package idsvc

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/trezcool/skillshare/core"
	"github.com/trezcool/skillshare/core/auth"
)

// CodePrompt presents the consent URL to the user and returns the
// authorization code they obtained.
type CodePrompt func(authURL string) (code string, err error)

// GoogleProvider runs the Google OAuth flow. The consent screen is delegated
// to the prompt, so the same provider serves both the CLI and tests.
type GoogleProvider struct {
	conf   *oauth2.Config
	prompt CodePrompt
	logger core.Logger
}

var _ auth.IdentityProvider = (*GoogleProvider)(nil)

func NewGoogleProvider(conf *core.Config, prompt CodePrompt, logger core.Logger) *GoogleProvider {
	return &GoogleProvider{
		conf: &oauth2.Config{
			ClientID:     conf.Google.ClientID,
			ClientSecret: conf.Google.ClientSecret,
			RedirectURL:  conf.Google.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/calendar.events",
			},
			Endpoint: google.Endpoint,
		},
		prompt: prompt,
		logger: logger,
	}
}

func (p *GoogleProvider) SignIn(ctx context.Context) (auth.ProviderToken, error) {
	authURL := p.conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	code, err := p.prompt(authURL)
	if err != nil {
		return auth.ProviderToken{}, errors.Wrap(err, "obtaining authorization code")
	}

	tok, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return auth.ProviderToken{}, errors.Wrap(err, "exchanging authorization code")
	}

	idTok, _ := tok.Extra("id_token").(string)
	if idTok == "" {
		return auth.ProviderToken{}, errors.New("no id token in exchange response")
	}
	return auth.ProviderToken{
		IDToken:      idTok,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}, nil
}

// Profile validates the id token and extracts the identity claims.
func (p *GoogleProvider) Profile(ctx context.Context, tok auth.ProviderToken) (auth.ProviderProfile, error) {
	payload, err := idtoken.Validate(ctx, tok.IDToken, p.conf.ClientID)
	if err != nil {
		return auth.ProviderProfile{}, errors.Wrap(err, "validating id token")
	}
	prof := auth.ProviderProfile{}
	if email, ok := payload.Claims["email"].(string); ok {
		prof.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		prof.FullName = name
	}
	return prof, nil
}
