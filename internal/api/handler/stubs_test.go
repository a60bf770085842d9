package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/portal-client/internal/core/form"
	"github.com/jobportal/portal-client/internal/core/service"
	"github.com/jobportal/portal-client/internal/infrastructure/notify"
)

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

type hookCall struct {
	hook, id string
	wait     bool
}

type stubFetcher struct {
	calls []hookCall
	runFn func(ctx context.Context, hook, id string) error
}

func (f *stubFetcher) Run(ctx context.Context, hook, id string) error {
	f.calls = append(f.calls, hookCall{hook: hook, id: id, wait: true})
	if f.runFn != nil {
		return f.runFn(ctx, hook, id)
	}
	return nil
}

func (f *stubFetcher) Schedule(hook, id string) error {
	f.calls = append(f.calls, hookCall{hook: hook, id: id})
	return nil
}

type stubResetter struct{ resets int }

func (r *stubResetter) Reset() { r.resets++ }

type stubSubmitter struct {
	submitFn func(ctx context.Context, spec service.FormSpec, draft *form.Draft) (*service.Result, error)
}

func (s *stubSubmitter) Submit(ctx context.Context, spec service.FormSpec, draft *form.Draft) (*service.Result, error) {
	return s.submitFn(ctx, spec, draft)
}

type stubSessionActions struct {
	logoutFn func(ctx context.Context) (string, error)
	queries  []string
}

func (s *stubSessionActions) Logout(ctx context.Context) (string, error) { return s.logoutFn(ctx) }

func (s *stubSessionActions) Search(query string) string {
	s.queries = append(s.queries, query)
	return "/browse"
}

type stubFeed struct {
	after   uint64
	notices []notify.Notice
}

func (f *stubFeed) Since(after uint64) []notify.Notice {
	f.after = after
	return f.notices
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}
