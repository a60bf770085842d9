package domain

import "errors"

// Submission error taxonomy. Every failure leaving the submission pipeline
// matches exactly one of the first three via errors.Is.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrServerRejected     = errors.New("server rejected request")
	ErrTransportFailure   = errors.New("transport failure")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

var (
	ErrIncompleteIdentity = errors.New("identity is incomplete")
	ErrUnknownForm        = errors.New("unknown form")
	ErrUnknownFetch       = errors.New("unknown fetch hook")
	ErrMissingParameter   = errors.New("missing parameter")
	ErrSessionNotFound    = errors.New("session snapshot not found")
)
