package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/state"
)

// Fetch hook names.
const (
	HookJobs        = "jobs"
	HookJob         = "job"
	HookCompanies   = "companies"
	HookCompany     = "company"
	HookAdminJobs   = "adminJobs"
	HookAppliedJobs = "appliedJobs"
	HookApplicants  = "applicants"
)

// FetchService runs the background hooks that populate the entity caches.
// Collection hooks replace the whole collection and drop responses older
// than the last one applied; by-id hooks upsert a single entry.
type FetchService struct {
	api      ports.PortalAPI
	store    *state.Store
	queue    ports.FetchQueue
	observer Observer
	timeout  time.Duration
	log      zerolog.Logger
}

// FetchOption customises a FetchService.
type FetchOption func(*FetchService)

// WithQueue runs scheduled hooks on q instead of inline.
func WithQueue(q ports.FetchQueue) FetchOption {
	return func(s *FetchService) { s.queue = q }
}

// WithFetchObserver reports fetch outcomes to o.
func WithFetchObserver(o Observer) FetchOption {
	return func(s *FetchService) { s.observer = o }
}

// WithFetchTimeout bounds every fetch request.
func WithFetchTimeout(d time.Duration) FetchOption {
	return func(s *FetchService) { s.timeout = d }
}

func NewFetchService(api ports.PortalAPI, store *state.Store, log zerolog.Logger, opts ...FetchOption) *FetchService {
	s := &FetchService{api: api, store: store, observer: nopObserver{}, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes hook synchronously. id is required by the by-id hooks and
// ignored by the others.
func (s *FetchService) Run(ctx context.Context, hook, id string) error {
	switch hook {
	case HookJobs:
		return s.Jobs(ctx)
	case HookJob:
		return s.Job(ctx, id)
	case HookCompanies:
		return s.Companies(ctx)
	case HookCompany:
		return s.Company(ctx, id)
	case HookAdminJobs:
		return s.AdminJobs(ctx)
	case HookAppliedJobs:
		return s.AppliedJobs(ctx)
	case HookApplicants:
		return s.Applicants(ctx, id)
	default:
		return fmt.Errorf("%q: %w", hook, domain.ErrUnknownFetch)
	}
}

// Schedule runs hook in the background. Hooks for the same collection run in
// the order scheduled.
func (s *FetchService) Schedule(hook, id string) error {
	if !knownHook(hook) {
		return fmt.Errorf("%q: %w", hook, domain.ErrUnknownFetch)
	}
	task := func(ctx context.Context) {
		if err := s.Run(ctx, hook, id); err != nil {
			s.log.Warn().Err(err).Str("hook", hook).Str("id", id).Msg("background fetch failed")
		}
	}
	if s.queue == nil {
		go task(context.Background())
		return nil
	}
	s.queue.Enqueue(hook, task)
	return nil
}

func knownHook(hook string) bool {
	switch hook {
	case HookJobs, HookJob, HookCompanies, HookCompany, HookAdminJobs, HookAppliedJobs, HookApplicants:
		return true
	}
	return false
}

// Jobs fetches the public job list filtered by the current search query.
// An empty query means no filter.
func (s *FetchService) Jobs(ctx context.Context) error {
	var query url.Values
	if q := s.store.SearchQuery(); q != "" {
		query = url.Values{"keyword": {q}}
	}
	req := ports.Request{Method: http.MethodGet, Path: "/job/get", Query: query}
	return fetchList(ctx, s, state.CollectionJobs, req, "jobs", state.ReplaceJobs)
}

// Companies fetches the companies registered by the current admin.
func (s *FetchService) Companies(ctx context.Context) error {
	req := ports.Request{Method: http.MethodGet, Path: "/company/get"}
	return fetchList(ctx, s, state.CollectionCompanies, req, "companies", state.ReplaceCompanies)
}

// AdminJobs fetches the jobs created by the current admin.
func (s *FetchService) AdminJobs(ctx context.Context) error {
	req := ports.Request{Method: http.MethodGet, Path: "/job/getadminjobs"}
	return fetchList(ctx, s, state.CollectionAdminJobs, req, "jobs", state.ReplaceAdminJobs)
}

// AppliedJobs fetches the current candidate's applications.
func (s *FetchService) AppliedJobs(ctx context.Context) error {
	req := ports.Request{Method: http.MethodGet, Path: "/application/get"}
	return fetchList(ctx, s, state.CollectionAppliedJobs, req, "application", state.ReplaceAppliedJobs)
}

// Applicants fetches one job together with its applications.
func (s *FetchService) Applicants(ctx context.Context, jobID string) error {
	if jobID == "" {
		return fmt.Errorf("applicants: job id: %w", domain.ErrMissingParameter)
	}
	req := ports.Request{Method: http.MethodGet, Path: "/application/" + url.PathEscape(jobID) + "/applicants"}
	return fetchItem(ctx, s, state.CollectionApplicants, req, "job", func(e state.Entities, job *domain.JobPosting) state.Entities {
		return state.SetApplicants(e, job)
	})
}

// Job fetches a single job into the single-job lookup.
func (s *FetchService) Job(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("job: id: %w", domain.ErrMissingParameter)
	}
	req := ports.Request{Method: http.MethodGet, Path: "/job/get/" + url.PathEscape(id)}
	return fetchItem(ctx, s, "", req, "job", func(e state.Entities, job *domain.JobPosting) state.Entities {
		if job == nil {
			e.SingleJob = nil
			return e
		}
		return state.UpsertJob(e, *job)
	})
}

// Company fetches a single company into the single-company lookup.
func (s *FetchService) Company(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("company: id: %w", domain.ErrMissingParameter)
	}
	req := ports.Request{Method: http.MethodGet, Path: "/company/get/" + url.PathEscape(id)}
	return fetchItem(ctx, s, "", req, "company", func(e state.Entities, c *domain.Company) state.Entities {
		if c == nil {
			e.SingleCompany = nil
			return e
		}
		return state.UpsertCompany(e, *c)
	})
}

// do sends req and folds a declared failure into an error.
func (s *FetchService) do(ctx context.Context, req ports.Request) (*ports.Envelope, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	env, err := s.api.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return env, fmt.Errorf("%s %s: %w: %s", req.Method, req.Path, domain.ErrServerRejected, env.Message)
	}
	return env, nil
}

// fetchList replaces collection c with the array stored under key. A
// transport failure degrades to an empty collection; a declared failure
// leaves the cache as it was.
func fetchList[T any](ctx context.Context, s *FetchService, c state.Collection, req ports.Request, key string, replace func(state.Entities, []T) state.Entities) error {
	ticket := s.store.BeginFetch(c)
	log := s.log.With().Str("collection", string(c)).Uint64("ticket", ticket).Logger()

	env, err := s.do(ctx, req)
	if err == nil {
		var items []T
		if _, derr := env.Decode(key, &items); derr != nil {
			err = fmt.Errorf("%s: %w: %w", key, domain.ErrTransportFailure, derr)
		} else {
			if !s.store.ApplyFetch(c, ticket, func(e state.Entities) state.Entities { return replace(e, items) }) {
				log.Debug().Msg("stale response dropped")
				s.observer.ObserveFetch(string(c), "stale")
				return nil
			}
			log.Debug().Int("count", len(items)).Msg("collection replaced")
			s.observer.ObserveFetch(string(c), "success")
			return nil
		}
	}

	s.observer.ObserveFetch(string(c), Outcome(err))
	if env == nil || env.Success {
		s.store.ApplyFetch(c, ticket, func(e state.Entities) state.Entities { return replace(e, nil) })
		log.Warn().Err(err).Msg("fetch failed, collection emptied")
	} else {
		log.Info().Err(err).Msg("fetch rejected")
	}
	return err
}

// fetchItem is fetchList for single-entity payloads. An empty collection
// name skips ticketing: the last response to resolve wins.
func fetchItem[T any](ctx context.Context, s *FetchService, c state.Collection, req ports.Request, key string, set func(state.Entities, *T) state.Entities) error {
	var ticket uint64
	if c != "" {
		ticket = s.store.BeginFetch(c)
	}
	apply := func(item *T) bool {
		reduce := func(e state.Entities) state.Entities { return set(e, item) }
		if c == "" {
			s.store.Update(reduce)
			return true
		}
		return s.store.ApplyFetch(c, ticket, reduce)
	}
	label := string(c)
	if label == "" {
		label = key
	}

	env, err := s.do(ctx, req)
	if err == nil {
		var item T
		found, derr := env.Decode(key, &item)
		switch {
		case derr != nil:
			err = fmt.Errorf("%s: %w: %w", key, domain.ErrTransportFailure, derr)
		case !found:
			err = fmt.Errorf("%s: %w: missing payload", key, domain.ErrTransportFailure)
		default:
			if !apply(&item) {
				s.observer.ObserveFetch(label, "stale")
				return nil
			}
			s.observer.ObserveFetch(label, "success")
			return nil
		}
	}

	s.observer.ObserveFetch(label, Outcome(err))
	if env == nil || env.Success {
		apply(nil)
		s.log.Warn().Err(err).Str("lookup", label).Msg("fetch failed, lookup cleared")
	} else {
		s.log.Info().Err(err).Str("lookup", label).Msg("fetch rejected")
	}
	return err
}
