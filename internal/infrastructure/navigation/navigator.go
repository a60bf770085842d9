// Package navigation tracks the current screen and routes every move
// through the route guard.
package navigation

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/guard"
	"github.com/jobportal/portal-client/internal/core/ports"
)

// maxHops bounds redirect chains such as admin on /profile -> / -> /admin/companies.
const maxHops = 4

// SessionSource yields the session the guard decides against.
type SessionSource interface {
	Session() domain.Session
}

// RedirectObserver is told about every guard redirect.
type RedirectObserver interface {
	ObserveRedirect(reason string)
}

// Navigator implements ports.Navigator.
type Navigator struct {
	guard    *guard.Guard
	sessions SessionSource
	observer RedirectObserver
	logger   zerolog.Logger

	mu       sync.Mutex
	location string
	history  []string
}

// New creates a Navigator positioned at start. start is not guarded; call
// Navigate(start) to mount it.
func New(g *guard.Guard, sessions SessionSource, start string, logger zerolog.Logger) *Navigator {
	return &Navigator{
		guard:    g,
		sessions: sessions,
		logger:   logger,
		location: guard.Clean(start),
	}
}

// SetObserver installs o; nil disables reporting.
func (n *Navigator) SetObserver(o RedirectObserver) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observer = o
}

// Resolve follows guard redirects from path without moving.
func (n *Navigator) Resolve(path string) (string, guard.Decision) {
	sess := n.sessions.Session()
	target := guard.Clean(path)
	first := n.guard.Decide(target, sess)
	d := first
	for hop := 0; !d.Allowed && d.Redirect != "" && hop < maxHops; hop++ {
		target = d.Redirect
		d = n.guard.Decide(target, sess)
	}
	return target, first
}

// Navigate moves to path, or to wherever the guard sends the user instead,
// and returns the location reached.
func (n *Navigator) Navigate(path string) string {
	target, d := n.Resolve(path)

	n.mu.Lock()
	n.location = target
	n.history = append(n.history, target)
	obs := n.observer
	n.mu.Unlock()

	if !d.Allowed {
		n.logger.Info().
			Str("requested", guard.Clean(path)).
			Str("location", target).
			Str("reason", d.Reason).
			Msg("navigation redirected")
		if obs != nil {
			obs.ObserveRedirect(d.Reason)
		}
	}
	return target
}

// Location returns the current screen.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// History returns every location reached, oldest first.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

var _ ports.Navigator = (*Navigator)(nil)
