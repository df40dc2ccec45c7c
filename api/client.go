// Package api is the HTTP client for the SkillShare backend. It implements
// the gateway interfaces the core controllers consume.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core"
)

// Error is a non-2xx backend response.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.Code))
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// StatusCode satisfies core.StatusCoder.
func (e *Error) StatusCode() int { return e.Code }

// IsStatus reports whether err's cause is a backend response with the given
// status.
func IsStatus(err error, code int) bool {
	return core.ErrStatusCode(err) == code
}

type Client struct {
	baseURL string
	token   string
	hc      *http.Client
	logger  core.Logger
}

var _ core.StatusCoder = (*Error)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(conf.APIBaseURL, "/"),
		hc:      &http.Client{Timeout: conf.RequestTimeout},
		logger:  logger,
	}
}

// WithToken returns a copy of the client that authenticates as the session
// holder. The receiver is unchanged.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.Debug("api request failed", "method", method, "path", path, "status", res.StatusCode)
		return &Error{Code: res.StatusCode, Message: errorMessage(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err = json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}

// errorMessage extracts a human message from an error body; the backend sends
// either {"message": "..."} or plain text.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
