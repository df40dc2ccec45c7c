package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/trezcool/skillshare/core"
)

// Availability is the outcome of a username probe.
type Availability int

const (
	AvailabilityUnknown Availability = iota
	AvailabilityAvailable
	AvailabilityTaken
)

func (a Availability) String() string {
	switch a {
	case AvailabilityAvailable:
		return "available"
	case AvailabilityTaken:
		return "taken"
	}
	return "unknown"
}

// debounceDelay is how long the checker waits after the last keystroke before
// probing the backend.
const debounceDelay = 500 * time.Millisecond

// minUsernameLength below which no probe is made.
const minUsernameLength = 3

// CheckUsernameAvailability probes the backend for the candidate username.
// A conflict means taken, success means available, and any transport failure
// leaves the availability unknown rather than blocking the user.
func (svc *Service) CheckUsernameAvailability(ctx context.Context, candidate string) Availability {
	err := svc.gw.CheckUsername(ctx, candidate)
	if err == nil {
		return AvailabilityAvailable
	}
	if core.ErrStatusCode(err) == http.StatusConflict {
		return AvailabilityTaken
	}
	svc.logger.Warn("username availability check failed", "username", candidate, "err", err)
	return AvailabilityUnknown
}

// AvailabilityChecker debounces username keystrokes and reports the backend's
// verdict through onResult. Only the last candidate within the debounce window
// is probed.
type AvailabilityChecker struct {
	svc *Service
	// providerUsername is never probed; it is already the caller's.
	providerUsername string
	onResult         func(candidate string, a Availability)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func NewAvailabilityChecker(svc *Service, providerUsername string, onResult func(string, Availability)) *AvailabilityChecker {
	return &AvailabilityChecker{svc: svc, providerUsername: providerUsername, onResult: onResult}
}

// Input feeds the checker the current value of the username field. Each call
// resets the debounce window.
func (c *AvailabilityChecker) Input(candidate string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.stopped {
		return
	}
	if len(candidate) < minUsernameLength {
		return
	}
	if c.providerUsername != "" && candidate == c.providerUsername {
		return
	}

	c.timer = time.AfterFunc(debounceDelay, func() {
		c.mu.Lock()
		stopped := c.stopped
		c.mu.Unlock()
		if stopped {
			return
		}
		c.onResult(candidate, c.svc.CheckUsernameAvailability(context.Background(), candidate))
	})
}

// Stop cancels any pending probe and disables the checker.
func (c *AvailabilityChecker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
