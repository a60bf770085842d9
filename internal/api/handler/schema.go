package handler

import (
	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/form"
	"github.com/jobportal/portal-client/internal/core/service"
	"github.com/jobportal/portal-client/internal/core/state"
	"github.com/jobportal/portal-client/internal/infrastructure/notify"
)

// --- Request / Response types ---

type errorResponse struct {
	Error  string      `json:"error"`
	Fields form.Errors `json:"fields,omitempty"`
}

type stateResponse struct {
	Location string         `json:"location"`
	Session  domain.Session `json:"session"`
	Entities state.Entities `json:"entities"`
}

type screenResponse struct {
	stateResponse
	Hooks []service.HookCall `json:"hooks"`
}

type validateResponse struct {
	Valid  bool        `json:"valid"`
	Errors form.Errors `json:"errors"`
}

type draftResponse struct {
	Values   map[string]string `json:"values"`
	Files    []string          `json:"files"`
	Valid    bool              `json:"valid"`
	Errors   form.Errors       `json:"errors"`
	InFlight bool              `json:"inFlight"`
}

type fieldRequest struct {
	Value string `json:"value" validate:"max=5000"`
}

type submitResponse struct {
	Form     string `json:"form"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

type searchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

type fetchRequest struct {
	Hook string `json:"hook" validate:"required,oneof=jobs job companies company adminJobs appliedJobs applicants"`
	ID   string `json:"id"`
}

type locationResponse struct {
	Location string `json:"location"`
}

type notificationsResponse struct {
	Notices []notify.Notice `json:"notices"`
}
