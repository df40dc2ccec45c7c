package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/trezcool/skillshare/core/auth"
)

var _ auth.Gateway = (*Client)(nil)

func (c *Client) Login(ctx context.Context, username, password string) (auth.AuthResult, error) {
	var res auth.AuthResult
	body := auth.LoginForm{Username: username, Password: password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &res)
	return res, err
}

func (c *Client) Register(ctx context.Context, form auth.RegisterForm) (auth.AuthResult, error) {
	var res auth.AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, form, &res)
	return res, err
}

func (c *Client) GoogleLogin(ctx context.Context, gl auth.GoogleLogin) (auth.AuthResult, error) {
	var res auth.AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/google-login", nil, gl, &res)
	return res, err
}

// CheckUsername returns nil when the username is free; a 409 response means it
// is taken.
func (c *Client) CheckUsername(ctx context.Context, username string) error {
	q := url.Values{"username": {username}}
	return c.do(ctx, http.MethodGet, "/api/auth/check-username", q, nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, token string, userID int, upd auth.ProfileUpdate) (auth.ProfileUpdateResult, error) {
	var res auth.ProfileUpdateResult
	err := c.WithToken(token).do(ctx, http.MethodPut, "/api/users/"+strconv.Itoa(userID), nil, upd, &res)
	return res, err
}
