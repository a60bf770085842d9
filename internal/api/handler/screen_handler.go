package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/guard"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/service"
	"github.com/jobportal/portal-client/internal/core/state"
)

// StateReader exposes read-only snapshots of the store.
type StateReader interface {
	Session() domain.Session
	Entities() state.Entities
}

// Fetcher runs entity fetch hooks.
type Fetcher interface {
	Run(ctx context.Context, hook, id string) error
	Schedule(hook, id string) error
}

// DraftResetter discards the drafts of the screen being left.
type DraftResetter interface {
	Reset()
}

// ScreenHandler mounts screens. The guard middleware has already run by
// the time Mount is called.
type ScreenHandler struct {
	nav     ports.Navigator
	store   StateReader
	fetcher Fetcher
	drafts  DraftResetter
	log     zerolog.Logger
}

func NewScreenHandler(nav ports.Navigator, store StateReader, fetcher Fetcher, drafts DraftResetter, log zerolog.Logger) *ScreenHandler {
	return &ScreenHandler{nav: nav, store: store, fetcher: fetcher, drafts: drafts, log: log}
}

// Mount handles GET /screens/*.
//
// @Summary      Mount a screen
// @Description  Runs the route guard, moves to the screen and starts its fetch hooks. With wait=true the hooks finish before the response.
// @Tags         screens
// @Produce      json
// @Param        path  path      string  true   "Screen path, e.g. admin/jobs"
// @Param        wait  query     bool    false  "Run fetch hooks before responding"
// @Success      200   {object}  screenResponse
// @Success      303   {object}  map[string]string
// @Router       /screens/{path} [get]
func (h *ScreenHandler) Mount(c echo.Context) error {
	location := h.nav.Navigate(guard.Clean(c.Param("*")))
	h.drafts.Reset()

	hooks := service.ScreenHooks(location)
	wait := c.QueryParam("wait") == "true"
	for _, call := range hooks {
		var err error
		if wait {
			err = h.fetcher.Run(c.Request().Context(), call.Hook, call.ID)
		} else {
			err = h.fetcher.Schedule(call.Hook, call.ID)
		}
		// Read-path failures degrade to empty caches; the screen still renders.
		if err != nil {
			h.log.Warn().Err(err).Str("screen", location).Str("hook", call.Hook).Msg("screen fetch failed")
		}
	}

	if hooks == nil {
		hooks = []service.HookCall{}
	}
	return c.JSON(http.StatusOK, screenResponse{stateResponse: h.snapshot(location), Hooks: hooks})
}

// State handles GET /state.
//
// @Summary      Current client state
// @Tags         screens
// @Produce      json
// @Success      200  {object}  stateResponse
// @Router       /state [get]
func (h *ScreenHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot(h.nav.Location()))
}

// Fetch handles POST /fetch, running one hook on demand.
//
// @Summary      Run a fetch hook
// @Tags         screens
// @Accept       json
// @Produce      json
// @Param        body  body      fetchRequest  true  "Hook and optional id"
// @Success      200   {object}  stateResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /fetch [post]
func (h *ScreenHandler) Fetch(c echo.Context) error {
	var req fetchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if err := h.fetcher.Run(c.Request().Context(), req.Hook, req.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.snapshot(h.nav.Location()))
}

func (h *ScreenHandler) snapshot(location string) stateResponse {
	return stateResponse{
		Location: location,
		Session:  h.store.Session(),
		Entities: h.store.Entities(),
	}
}
