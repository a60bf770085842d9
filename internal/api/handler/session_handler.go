package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/portal-client/internal/infrastructure/notify"
)

// SessionActions are the session operations that are not form submissions.
type SessionActions interface {
	Logout(ctx context.Context) (string, error)
	Search(query string) string
}

// NoticeFeed lists recent toasts.
type NoticeFeed interface {
	Since(after uint64) []notify.Notice
}

// SessionHandler exposes logout, search and the toast feed.
type SessionHandler struct {
	actions SessionActions
	feed    NoticeFeed
}

func NewSessionHandler(actions SessionActions, feed NoticeFeed) *SessionHandler {
	return &SessionHandler{actions: actions, feed: feed}
}

// Logout handles POST /session/logout.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  locationResponse
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	loc, err := h.actions.Logout(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationResponse{Location: loc})
}

// Search handles POST /search.
//
// @Summary      Search jobs
// @Description  Records the query for the job list and opens the browse screen.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Search query"
// @Success      200   {object}  locationResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /search [post]
func (h *SessionHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, locationResponse{Location: h.actions.Search(req.Query)})
}

// Notifications handles GET /notifications.
//
// @Summary      Recent toasts
// @Tags         session
// @Produce      json
// @Param        after  query     int  false  "Only notices with a greater sequence number"
// @Success      200    {object}  notificationsResponse
// @Failure      400    {object}  errorResponse
// @Router       /notifications [get]
func (h *SessionHandler) Notifications(c echo.Context) error {
	var after uint64
	if raw := c.QueryParam("after"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "after must be a non-negative integer")
		}
		after = n
	}
	return c.JSON(http.StatusOK, notificationsResponse{Notices: h.feed.Since(after)})
}
