package state

import (
	"slices"

	"github.com/jobportal/portal-client/internal/core/domain"
)

// Collection names an entity collection refreshed by a fetch-all hook.
type Collection string

const (
	CollectionJobs        Collection = "jobs"
	CollectionCompanies   Collection = "companies"
	CollectionAdminJobs   Collection = "adminJobs"
	CollectionAppliedJobs Collection = "appliedJobs"
	CollectionApplicants  Collection = "applicants"
)

// Entities mirrors server-owned collections plus the single-entity lookups
// and the search query.
type Entities struct {
	Jobs          []domain.JobPosting  `json:"jobs"`
	AdminJobs     []domain.JobPosting  `json:"adminJobs"`
	Companies     []domain.Company     `json:"companies"`
	AppliedJobs   []domain.Application `json:"appliedJobs"`
	Applicants    *domain.JobPosting   `json:"applicants,omitempty"`
	SingleJob     *domain.JobPosting   `json:"singleJob,omitempty"`
	SingleCompany *domain.Company      `json:"singleCompany,omitempty"`
	SearchQuery   string               `json:"searchQuery"`
}

// ReplaceJobs swaps the whole job list.
func ReplaceJobs(e Entities, jobs []domain.JobPosting) Entities {
	e.Jobs = cloneJobs(jobs)
	return e
}

// ReplaceAdminJobs swaps the list of jobs posted by the current admin.
func ReplaceAdminJobs(e Entities, jobs []domain.JobPosting) Entities {
	e.AdminJobs = cloneJobs(jobs)
	return e
}

// ReplaceCompanies swaps the whole company list.
func ReplaceCompanies(e Entities, companies []domain.Company) Entities {
	e.Companies = slices.Clone(companies)
	if e.Companies == nil {
		e.Companies = []domain.Company{}
	}
	return e
}

// ReplaceAppliedJobs swaps the current candidate's applications.
func ReplaceAppliedJobs(e Entities, apps []domain.Application) Entities {
	e.AppliedJobs = slices.Clone(apps)
	if e.AppliedJobs == nil {
		e.AppliedJobs = []domain.Application{}
	}
	return e
}

// SetApplicants stores the job whose applications an admin is reviewing.
func SetApplicants(e Entities, job *domain.JobPosting) Entities {
	e.Applicants = cloneJobPtr(job)
	return e
}

// UpsertJob sets the single-job lookup and updates the matching entry in
// the job list when present.
func UpsertJob(e Entities, job domain.JobPosting) Entities {
	e.SingleJob = cloneJobPtr(&job)
	if i := slices.IndexFunc(e.Jobs, func(j domain.JobPosting) bool { return j.ID == job.ID }); i >= 0 {
		e.Jobs = cloneJobs(e.Jobs)
		e.Jobs[i] = job.Clone()
	}
	return e
}

// UpsertCompany sets the single-company lookup and inserts or updates the
// company in the company list.
func UpsertCompany(e Entities, c domain.Company) Entities {
	cc := c
	e.SingleCompany = &cc
	e.Companies = slices.Clone(e.Companies)
	if i := slices.IndexFunc(e.Companies, func(x domain.Company) bool { return x.ID == c.ID }); i >= 0 {
		e.Companies[i] = c
	} else {
		e.Companies = append(e.Companies, c)
	}
	return e
}

// SetSearchQuery records the query composed into the next job list fetch.
func SetSearchQuery(e Entities, q string) Entities {
	e.SearchQuery = q
	return e
}

// ClearEntities drops every cached entity; the search query survives.
func ClearEntities(e Entities) Entities {
	return Entities{SearchQuery: e.SearchQuery}
}

// HasCompany reports whether id is present in the company list.
func (e Entities) HasCompany(id string) bool {
	return slices.ContainsFunc(e.Companies, func(c domain.Company) bool { return c.ID == id })
}

func cloneEntities(e Entities) Entities {
	e.Jobs = cloneJobs(e.Jobs)
	e.AdminJobs = cloneJobs(e.AdminJobs)
	e.Companies = slices.Clone(e.Companies)
	e.AppliedJobs = slices.Clone(e.AppliedJobs)
	e.Applicants = cloneJobPtr(e.Applicants)
	e.SingleJob = cloneJobPtr(e.SingleJob)
	if e.SingleCompany != nil {
		c := *e.SingleCompany
		e.SingleCompany = &c
	}
	return e
}

func cloneJobs(jobs []domain.JobPosting) []domain.JobPosting {
	if jobs == nil {
		return []domain.JobPosting{}
	}
	out := make([]domain.JobPosting, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return out
}

func cloneJobPtr(j *domain.JobPosting) *domain.JobPosting {
	if j == nil {
		return nil
	}
	c := j.Clone()
	return &c
}
