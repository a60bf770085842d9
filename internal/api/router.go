package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/jobportal/portal-client/docs"
	"github.com/jobportal/portal-client/internal/api/handler"
	"github.com/jobportal/portal-client/internal/api/middleware"
	"github.com/jobportal/portal-client/internal/core/guard"
	"github.com/jobportal/portal-client/internal/core/ports"
)

// Drafts hands out and discards the drafts of the mounted screen.
type Drafts interface {
	handler.DraftSource
	handler.DraftResetter
}

// Deps is everything the shell routes need.
type Deps struct {
	Guard     *guard.Guard
	State     handler.StateReader
	Navigator ports.Navigator
	Fetcher   handler.Fetcher
	Drafts    Drafts
	Forms     handler.FormCatalog
	Submitter handler.Submitter
	Session   handler.SessionActions
	Notices   handler.NoticeFeed
	Redirects middleware.RedirectObserver
	// Readiness maps dependency names to their probes.
	Readiness map[string]handler.Pinger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Metrics ---
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "shell",
		Registerer: registerer,
	}))
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))

	// --- Docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness).Readiness)

	// --- Screens ---
	screens := handler.NewScreenHandler(d.Navigator, d.State, d.Fetcher, d.Drafts, d.Logger)
	sg := e.Group(middleware.ScreenPrefix)
	sg.GET("/*", screens.Mount, middleware.Guard(d.Guard, d.State, d.Redirects))
	e.GET("/state", screens.State)
	e.POST("/fetch", screens.Fetch)

	// --- Forms ---
	forms := handler.NewFormHandler(d.Forms, d.Drafts, d.Submitter)
	e.GET("/forms/:name", forms.Draft)
	e.PUT("/forms/:name/fields/:field", forms.SetField)
	e.DELETE("/forms/:name/files/:field", forms.ClearFile)
	e.POST("/forms/:name/validate", forms.Validate)
	e.POST("/forms/:name/submit", forms.Submit)

	// --- Session ---
	session := handler.NewSessionHandler(d.Session, d.Notices)
	e.POST("/session/logout", session.Logout)
	e.POST("/search", session.Search)
	e.GET("/notifications", session.Notifications)

	return e
}
