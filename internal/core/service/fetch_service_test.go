package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/state"
)

type inlineQueue struct {
	keys []string
}

func (q *inlineQueue) Enqueue(key string, task ports.FetchTask) {
	q.keys = append(q.keys, key)
	task(context.Background())
}

func TestFetchService_Jobs_ComposesKeyword(t *testing.T) {
	api := &stubAPI{doFn: func(_ context.Context, req ports.Request) (*ports.Envelope, error) {
		return envelope(true, "", map[string]any{"jobs": []domain.JobPosting{{ID: "j1"}, {ID: "j2"}}}), nil
	}}
	store := state.NewStore()
	svc := NewFetchService(api, store, discardLogger)

	if err := svc.Jobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q := api.last().Query; q.Has("keyword") {
		t.Errorf("empty search must not filter, got %v", q)
	}
	if got := len(store.Entities().Jobs); got != 2 {
		t.Errorf("expected 2 jobs, got %d", got)
	}

	store.Update(func(e state.Entities) state.Entities { return state.SetSearchQuery(e, "golang") })
	if err := svc.Jobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.last().Query.Get("keyword"); got != "golang" {
		t.Errorf("expected keyword=golang, got %q", got)
	}
}

func TestFetchService_ReplacesNotMerges(t *testing.T) {
	calls := 0
	api := &stubAPI{doFn: func(_ context.Context, _ ports.Request) (*ports.Envelope, error) {
		calls++
		if calls == 1 {
			return envelope(true, "", map[string]any{"companies": []domain.Company{{ID: "c1"}, {ID: "c2"}}}), nil
		}
		return envelope(true, "", map[string]any{"companies": []domain.Company{{ID: "c3"}}}), nil
	}}
	store := state.NewStore()
	svc := NewFetchService(api, store, discardLogger)

	_ = svc.Companies(context.Background())
	_ = svc.Companies(context.Background())

	got := store.Entities().Companies
	if len(got) != 1 || got[0].ID != "c3" {
		t.Errorf("expected only c3 after second fetch, got %+v", got)
	}
}

func TestFetchService_TransportFailureEmptiesCollection(t *testing.T) {
	store := state.NewStore()
	store.Update(func(e state.Entities) state.Entities {
		return state.ReplaceAdminJobs(e, []domain.JobPosting{{ID: "old"}})
	})
	obs := &recordingObserver{}
	api := &stubAPI{doFn: func(_ context.Context, _ ports.Request) (*ports.Envelope, error) {
		return nil, domain.ErrTransportFailure
	}}
	svc := NewFetchService(api, store, discardLogger, WithFetchObserver(obs))

	err := svc.AdminJobs(context.Background())
	if !errors.Is(err, domain.ErrTransportFailure) {
		t.Fatalf("expected ErrTransportFailure, got %v", err)
	}
	if got := store.Entities().AdminJobs; len(got) != 0 {
		t.Errorf("expected empty collection, got %+v", got)
	}
	if len(obs.fetches) != 1 || obs.fetches[0] != "adminJobs:transport_failure" {
		t.Errorf("unexpected observations %v", obs.fetches)
	}
}

func TestFetchService_RejectedKeepsCollection(t *testing.T) {
	store := state.NewStore()
	store.Update(func(e state.Entities) state.Entities {
		return state.ReplaceAppliedJobs(e, []domain.Application{{ID: "ap1"}})
	})
	api := &stubAPI{doFn: func(_ context.Context, _ ports.Request) (*ports.Envelope, error) {
		return envelope(false, "Not authenticated", nil), nil
	}}
	svc := NewFetchService(api, store, discardLogger)

	err := svc.AppliedJobs(context.Background())
	if !errors.Is(err, domain.ErrServerRejected) {
		t.Fatalf("expected ErrServerRejected, got %v", err)
	}
	if got := store.Entities().AppliedJobs; len(got) != 1 {
		t.Errorf("rejected fetch must not touch the cache, got %+v", got)
	}
}

func TestFetchService_StaleResponseDropped(t *testing.T) {
	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	api := &stubAPI{doFn: func(_ context.Context, _ ports.Request) (*ports.Envelope, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(slowEntered)
			<-slowRelease
			return envelope(true, "", map[string]any{"jobs": []domain.JobPosting{{ID: "stale"}}}), nil
		}
		return envelope(true, "", map[string]any{"jobs": []domain.JobPosting{{ID: "fresh"}}}), nil
	}}
	store := state.NewStore()
	svc := NewFetchService(api, store, discardLogger)

	done := make(chan error, 1)
	go func() { done <- svc.Jobs(context.Background()) }()
	<-slowEntered

	if err := svc.Jobs(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(slowRelease)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error from slow fetch: %v", err)
	}

	got := store.Entities().Jobs
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("stale response overwrote a newer one: %+v", got)
	}
}

func TestFetchService_ByIDUpserts(t *testing.T) {
	api := &stubAPI{doFn: func(_ context.Context, req ports.Request) (*ports.Envelope, error) {
		switch req.Path {
		case "/job/get/j1":
			return envelope(true, "", map[string]any{"job": domain.JobPosting{ID: "j1", Title: "Updated"}}), nil
		case "/company/get/c1":
			return envelope(true, "", map[string]any{"company": domain.Company{ID: "c1", Name: "Acme"}}), nil
		}
		t.Errorf("unexpected path %s", req.Path)
		return envelope(false, "", nil), nil
	}}
	store := state.NewStore()
	store.Update(func(e state.Entities) state.Entities {
		return state.ReplaceJobs(e, []domain.JobPosting{{ID: "j0"}, {ID: "j1", Title: "Old"}})
	})
	svc := NewFetchService(api, store, discardLogger)

	if err := svc.Run(context.Background(), HookJob, "j1"); err != nil {
		t.Fatalf("job: %v", err)
	}
	if err := svc.Run(context.Background(), HookCompany, "c1"); err != nil {
		t.Fatalf("company: %v", err)
	}

	e := store.Entities()
	if e.SingleJob == nil || e.SingleJob.Title != "Updated" {
		t.Errorf("single job not set: %+v", e.SingleJob)
	}
	if len(e.Jobs) != 2 || e.Jobs[1].Title != "Updated" {
		t.Errorf("job list entry not upserted: %+v", e.Jobs)
	}
	if e.SingleCompany == nil || e.SingleCompany.Name != "Acme" {
		t.Errorf("single company not set: %+v", e.SingleCompany)
	}
}

func TestFetchService_ByIDRequiresID(t *testing.T) {
	svc := NewFetchService(&stubAPI{}, state.NewStore(), discardLogger)

	for _, hook := range []string{HookJob, HookCompany, HookApplicants} {
		if err := svc.Run(context.Background(), hook, ""); !errors.Is(err, domain.ErrMissingParameter) {
			t.Errorf("%s: expected ErrMissingParameter, got %v", hook, err)
		}
	}
}

func TestFetchService_Applicants(t *testing.T) {
	api := &stubAPI{doFn: func(_ context.Context, req ports.Request) (*ports.Envelope, error) {
		if req.Path != "/application/j1/applicants" {
			t.Errorf("unexpected path %s", req.Path)
		}
		return envelope(true, "", map[string]any{"job": domain.JobPosting{
			ID:           "j1",
			Applications: []domain.Application{{ID: "ap1", Status: domain.ApplicationPending}},
		}}), nil
	}}
	store := state.NewStore()
	svc := NewFetchService(api, store, discardLogger)

	if err := svc.Applicants(context.Background(), "j1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := store.Entities().Applicants
	if got == nil || len(got.Applications) != 1 {
		t.Errorf("expected one applicant, got %+v", got)
	}
}

func TestFetchService_Schedule(t *testing.T) {
	api := &stubAPI{doFn: func(_ context.Context, _ ports.Request) (*ports.Envelope, error) {
		return envelope(true, "", map[string]any{"companies": []domain.Company{{ID: "c1"}}}), nil
	}}
	store := state.NewStore()
	q := &inlineQueue{}
	svc := NewFetchService(api, store, discardLogger, WithQueue(q))

	if err := svc.Schedule(HookCompanies, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.keys) != 1 || q.keys[0] != HookCompanies {
		t.Errorf("expected task keyed by hook, got %v", q.keys)
	}
	if !store.HasCompany("c1") {
		t.Error("scheduled task did not run")
	}

	if err := svc.Schedule("bogus", ""); !errors.Is(err, domain.ErrUnknownFetch) {
		t.Errorf("expected ErrUnknownFetch, got %v", err)
	}
}
