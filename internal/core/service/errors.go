package service

import (
	"errors"
	"fmt"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/form"
)

// DefaultErrorMessage is shown when a failure carries no server message.
const DefaultErrorMessage = "An error occurred"

// SubmitError is the single error type leaving the pipeline. Kind is one of
// domain.ErrValidationFailed, domain.ErrServerRejected or
// domain.ErrTransportFailure; errors.Is matches it as well as the cause.
type SubmitError struct {
	Form    string
	Kind    error
	Message string
	Fields  form.Errors
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Form, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Form, e.Kind, e.Message)
}

func (e *SubmitError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Outcome returns a short label for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, domain.ErrServerRejected):
		return "server_rejected"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "in_flight"
	default:
		return "transport_failure"
	}
}
