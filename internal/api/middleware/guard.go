package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/guard"
)

// ScreenPrefix is where screens are mounted in the shell.
const ScreenPrefix = "/screens"

// SessionSource yields the session the guard decides against.
type SessionSource interface {
	Session() domain.Session
}

// RedirectObserver is told about every refused mount.
type RedirectObserver interface {
	ObserveRedirect(reason string)
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
	Reason   string `json:"reason"`
}

// Guard refuses to mount a screen the session may not see and answers with
// a 303 pointing at the screen the user must go to instead. The screen path
// is read from the wildcard parameter.
func Guard(g *guard.Guard, sessions SessionSource, observer RedirectObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := guard.Clean(c.Param("*"))
			d := g.Decide(path, sessions.Session())
			if d.Allowed {
				return next(c)
			}
			if observer != nil {
				observer.ObserveRedirect(d.Reason)
			}
			c.Response().Header().Set(echo.HeaderLocation, ScreenPrefix+d.Redirect)
			return c.JSON(http.StatusSeeOther, redirectResponse{Redirect: d.Redirect, Reason: d.Reason})
		}
	}
}
