package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/form"
	"github.com/jobportal/portal-client/internal/core/service"
)

// errorResponse is the canonical error envelope for all shell errors.
type errorResponse struct {
	Error  string      `json:"error"`
	Fields form.Errors `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps the
// submission taxonomy and lookup errors to status codes and renders
// {"error": "<message>", "fields": {...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// The pipeline already toasted the message; the shell only echoes it.
	var se *service.SubmitError
	if errors.As(err, &se) {
		body := errorResponse{Error: se.Message, Fields: se.Fields}
		switch {
		case errors.Is(se, domain.ErrValidationFailed):
			return http.StatusUnprocessableEntity, body
		case errors.Is(se, domain.ErrServerRejected):
			return http.StatusBadRequest, body
		default:
			return http.StatusBadGateway, body
		}
	}

	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, errorResponse{Error: "submission already in progress"}
	case errors.Is(err, domain.ErrUnknownForm):
		return http.StatusNotFound, errorResponse{Error: "form not found"}
	case errors.Is(err, domain.ErrUnknownFetch):
		return http.StatusNotFound, errorResponse{Error: "fetch hook not found"}
	case errors.Is(err, domain.ErrMissingParameter):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrServerRejected):
		return http.StatusBadRequest, errorResponse{Error: "request rejected by the portal service"}
	case errors.Is(err, domain.ErrTransportFailure):
		return http.StatusBadGateway, errorResponse{Error: "portal service unavailable"}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
