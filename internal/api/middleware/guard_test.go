package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/guard"
)

type fixedSession domain.Session

func (s fixedSession) Session() domain.Session { return domain.Session(s) }

type countingObserver struct {
	reasons []string
}

func (o *countingObserver) ObserveRedirect(reason string) { o.reasons = append(o.reasons, reason) }

func mount(t *testing.T, sess fixedSession, obs RedirectObserver, screen string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, ScreenPrefix+screen, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("*")
	c.SetParamValues(screen[1:])

	called := false
	mw := Guard(guard.New(), sess, obs)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_Allows(t *testing.T) {
	sess := fixedSession{Identity: &domain.User{ID: "a1", Email: "a@b.com", Role: domain.RoleAdmin}}

	rec, called := mount(t, sess, nil, "/admin/jobs")
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	obs := &countingObserver{}

	rec, called := mount(t, fixedSession{}, obs, "/admin/jobs")
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/screens/login" {
		t.Fatalf("expected Location /screens/login, got %q", loc)
	}

	var resp redirectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Redirect != "/login" {
		t.Fatalf("unexpected body %+v", resp)
	}
	if len(obs.reasons) != 1 {
		t.Fatalf("expected one observed redirect, got %v", obs.reasons)
	}
}

func TestGuard_RedirectsCandidateFromAdmin(t *testing.T) {
	sess := fixedSession{Identity: &domain.User{ID: "u1", Email: "a@b.com", Role: domain.RoleCandidate}}

	rec, called := mount(t, sess, nil, "/admin/companies")
	if called {
		t.Fatalf("should not reach next handler")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/screens/" {
		t.Fatalf("expected Location /screens/, got %q", loc)
	}
}

func TestGuard_AdminLanding(t *testing.T) {
	sess := fixedSession{Identity: &domain.User{ID: "a1", Email: "a@b.com", Role: domain.RoleAdmin}}

	rec, _ := mount(t, sess, nil, "/")
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/screens/admin/companies" {
		t.Fatalf("expected admin company list, got %q", loc)
	}
}
