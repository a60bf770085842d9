package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/form"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/state"
)

// errMalformed marks a success response whose payload could not be applied.
var errMalformed = errors.New("malformed response")

// FormSpec parameterises the pipeline for one form: what to validate, how to
// serialise, where to send it, what to mutate and where to go on success.
type FormSpec struct {
	Name   string
	Schema form.Schema
	Method string
	Path   func(in form.Input) string
	// PathParams are fields consumed by Path and left out of the body.
	PathParams []string
	Encoding   ports.Encoding
	// JSONBody builds the JSON payload; nil sends every text field.
	JSONBody func(in form.Input) any
	// ListFields are multipart text fields split into trimmed tokens.
	ListFields []string
	// Apply decodes the success payload and performs the single store
	// mutation. It must decode everything before mutating.
	Apply func(env *ports.Envelope, in form.Input, store *state.Store) error
	// Redirect returns the screen to navigate to on success; "" stays put.
	Redirect func(env *ports.Envelope, in form.Input) string
	// SuccessFallback is shown when the server sends no message.
	SuccessFallback string
	// ErrorFallback replaces DefaultErrorMessage for this form.
	ErrorFallback string
	// TogglesLoading raises Session.IsLoading for the duration of the call.
	TogglesLoading bool
}

// Result describes a successful submission.
type Result struct {
	Form     string          `json:"form"`
	Message  string          `json:"message"`
	Location string          `json:"location"`
	Envelope *ports.Envelope `json:"-"`
}

// Pipeline runs the validate, serialise, send, interpret and apply sequence
// shared by every create and update screen.
type Pipeline struct {
	api      ports.PortalAPI
	store    *state.Store
	nav      ports.Navigator
	notify   ports.Notifier
	observer Observer
	timeout  time.Duration
	log      zerolog.Logger
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithObserver reports submission outcomes to o.
func WithObserver(o Observer) PipelineOption {
	return func(p *Pipeline) { p.observer = o }
}

// WithTimeout bounds every request; zero keeps the transport default.
func WithTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) { p.timeout = d }
}

// NewPipeline wires a Pipeline.
func NewPipeline(api ports.PortalAPI, store *state.Store, nav ports.Navigator, notify ports.Notifier, log zerolog.Logger, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		api:      api,
		store:    store,
		nav:      nav,
		notify:   notify,
		observer: nopObserver{},
		log:      log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs spec against the draft's current values.
func (p *Pipeline) Submit(ctx context.Context, spec FormSpec, draft *form.Draft) (*Result, error) {
	start := time.Now()
	res, err := p.submit(ctx, spec, draft)
	p.observer.ObserveSubmission(spec.Name, Outcome(err), time.Since(start))
	return res, err
}

func (p *Pipeline) submit(ctx context.Context, spec FormSpec, draft *form.Draft) (*Result, error) {
	log := p.log.With().Str("form", spec.Name).Logger()

	// One submission per draft at a time. Holding the draft freezes its
	// values, so the snapshot validated below is the one sent.
	if !draft.Acquire() {
		return nil, fmt.Errorf("%s: %w", spec.Name, domain.ErrSubmissionInFlight)
	}
	// Always released, whichever way we leave.
	defer draft.Release()

	// Nothing leaves the client when the snapshot is invalid.
	values, errs := draft.Snapshot()
	if !errs.Empty() {
		err := &SubmitError{
			Form:    spec.Name,
			Kind:    domain.ErrValidationFailed,
			Message: "Please correct the highlighted fields",
			Fields:  errs,
		}
		p.notify.Error(err.Message)
		log.Debug().Interface("fields", errs).Msg("submission blocked by validation")
		return nil, err
	}

	// Serialise.
	req := buildRequest(spec, values)

	if spec.TogglesLoading {
		p.store.SetLoading(true)
		defer p.store.SetLoading(false)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Exactly one request.
	env, err := p.api.Do(ctx, req)
	if err != nil {
		return nil, p.fail(log, spec, domain.ErrTransportFailure, "", err)
	}

	// Declared failure: nothing is mutated.
	if !env.Success {
		return nil, p.fail(log, spec, domain.ErrServerRejected, env.Message, nil)
	}

	// Success: one atomic mutation, then notify and navigate.
	if spec.Apply != nil {
		if err := spec.Apply(env, values, p.store); err != nil {
			return nil, p.fail(log, spec, domain.ErrTransportFailure, "", fmt.Errorf("%w: %w", errMalformed, err))
		}
	}

	msg := env.Message
	if msg == "" {
		msg = spec.SuccessFallback
	}
	if msg != "" {
		p.notify.Success(msg)
	}

	location := p.nav.Location()
	if spec.Redirect != nil {
		if target := spec.Redirect(env, values); target != "" {
			location = p.nav.Navigate(target)
		}
	}

	log.Info().Str("location", location).Msg("submission succeeded")
	return &Result{Form: spec.Name, Message: msg, Location: location, Envelope: env}, nil
}

func (p *Pipeline) fail(log zerolog.Logger, spec FormSpec, kind error, serverMsg string, cause error) error {
	msg := serverMsg
	if msg == "" {
		msg = spec.ErrorFallback
	}
	if msg == "" {
		msg = DefaultErrorMessage
	}
	p.notify.Error(msg)

	ev := log.Warn()
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Str("kind", kind.Error()).Str("message", msg).Msg("submission failed")

	return &SubmitError{Form: spec.Name, Kind: kind, Message: msg, Err: cause}
}

func buildRequest(spec FormSpec, in form.Input) ports.Request {
	method := spec.Method
	if method == "" {
		method = http.MethodPost
	}
	req := ports.Request{Method: method, Path: spec.Path(in), Encoding: spec.Encoding}
	in = in.Clone()
	for _, name := range spec.PathParams {
		delete(in.Fields, name)
	}

	switch spec.Encoding {
	case ports.EncodingJSON:
		if spec.JSONBody != nil {
			req.JSON = spec.JSONBody(in)
		} else {
			req.JSON = in.Fields
		}
	case ports.EncodingMultipart:
		req.Parts, req.Files = multipartParts(in, spec.ListFields)
	}
	return req
}

// multipartParts emits one part per text field, in a stable order. List
// fields become one part per trimmed token.
func multipartParts(in form.Input, listFields []string) ([]ports.Part, []ports.FilePart) {
	names := make([]string, 0, len(in.Fields))
	for name := range in.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []ports.Part
	for _, name := range names {
		value := in.Fields[name]
		if !slices.Contains(listFields, name) {
			parts = append(parts, ports.Part{Name: name, Value: value})
			continue
		}
		for _, token := range domain.SplitList(value) {
			parts = append(parts, ports.Part{Name: name, Value: token})
		}
	}

	var files []ports.FilePart
	for field, f := range in.Files {
		if f == nil {
			continue
		}
		files = append(files, ports.FilePart{
			Field:       field,
			Filename:    f.Filename,
			ContentType: form.DetectType(f),
			Content:     f.Content,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Field < files[j].Field })
	return parts, files
}
