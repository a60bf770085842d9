package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAPI struct {
	mu       sync.Mutex
	requests []ports.Request
	doFn     func(ctx context.Context, req ports.Request) (*ports.Envelope, error)
}

func (a *stubAPI) Do(ctx context.Context, req ports.Request) (*ports.Envelope, error) {
	a.mu.Lock()
	a.requests = append(a.requests, req)
	a.mu.Unlock()
	if a.doFn == nil {
		return envelope(true, "", nil), nil
	}
	return a.doFn(ctx, req)
}

func (a *stubAPI) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

func (a *stubAPI) last() ports.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.requests[len(a.requests)-1]
}

type stubNavigator struct {
	location string
	visited  []string
}

func (n *stubNavigator) Navigate(path string) string {
	n.visited = append(n.visited, path)
	n.location = path
	return path
}

func (n *stubNavigator) Location() string { return n.location }

type stubNotifier struct {
	successes []string
	errors    []string
}

func (n *stubNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *stubNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

type stubCredentials struct {
	token string
}

func (c *stubCredentials) Token() string           { return c.token }
func (c *stubCredentials) SetToken(t string) error { c.token = t; return nil }
func (c *stubCredentials) ClearToken() error       { c.token = ""; return nil }

type stubSessionRepo struct {
	snap    *ports.SessionSnapshot
	saves   int
	deletes int
	loadErr error
}

func (r *stubSessionRepo) Save(_ context.Context, snap ports.SessionSnapshot) error {
	r.saves++
	s := snap
	r.snap = &s
	return nil
}

func (r *stubSessionRepo) Load(_ context.Context) (*ports.SessionSnapshot, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.snap == nil {
		return nil, domain.ErrSessionNotFound
	}
	s := *r.snap
	return &s, nil
}

func (r *stubSessionRepo) Delete(_ context.Context) error {
	r.deletes++
	r.snap = nil
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func envelope(success bool, msg string, data map[string]any) *ports.Envelope {
	env := &ports.Envelope{Status: 200, Success: success, Message: msg, Data: map[string]json.RawMessage{}}
	for k, v := range data {
		raw, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		env.Data[k] = raw
	}
	return env
}

func candidate() domain.User {
	return domain.User{
		ID:          "u1",
		Fullname:    "Ada Candidate",
		Email:       "a@b.com",
		PhoneNumber: "0123456789",
		Role:        domain.RoleCandidate,
		Profile:     domain.Profile{Bio: "hi", Skills: []string{"go"}},
	}
}

func admin() domain.User {
	u := candidate()
	u.ID = "a1"
	u.Role = domain.RoleAdmin
	return u
}
