package service

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/form"
	"github.com/jobportal/portal-client/internal/core/guard"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/state"
)

// Path parameters carried as draft fields.
const (
	ParamCompanyID     = "id"
	ParamJobID         = "jobId"
	ParamApplicationID = "applicationId"
)

// Forms is the registry of every form the portal submits.
type Forms struct {
	specs map[string]FormSpec
}

// NewForms builds the registry. The job-post schema checks company ids
// against the store's company cache.
func NewForms(store *state.Store) *Forms {
	specs := []FormSpec{
		loginSpec(),
		signupSpec(),
		profileSpec(),
		companyCreateSpec(),
		companySetupSpec(),
		jobPostSpec(store),
		applyJobSpec(store),
		applicationStatusSpec(),
	}
	f := &Forms{specs: make(map[string]FormSpec, len(specs))}
	for _, s := range specs {
		f.specs[s.Name] = s
	}
	return f
}

// Spec returns the spec registered under name.
func (f *Forms) Spec(name string) (FormSpec, error) {
	s, ok := f.specs[name]
	if !ok {
		return FormSpec{}, fmt.Errorf("%q: %w", name, domain.ErrUnknownForm)
	}
	return s, nil
}

// Names lists the registered forms in sorted order.
func (f *Forms) Names() []string {
	names := make([]string, 0, len(f.specs))
	for name := range f.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDraft creates a draft for the named form.
func (f *Forms) NewDraft(name string, initial form.Input) (*form.Draft, error) {
	s, err := f.Spec(name)
	if err != nil {
		return nil, err
	}
	if initial.Fields == nil {
		initial.Fields = map[string]string{}
	}
	return form.NewDraft(name, s.Schema, initial), nil
}

func staticPath(p string) func(form.Input) string {
	return func(form.Input) string { return p }
}

func staticRedirect(p string) func(*ports.Envelope, form.Input) string {
	return func(*ports.Envelope, form.Input) string { return p }
}

// applyIdentity replaces the session identity with the "user" payload.
func applyIdentity(env *ports.Envelope, _ form.Input, store *state.Store) error {
	var u domain.User
	found, err := env.Decode("user", &u)
	if err != nil {
		return err
	}
	if !found {
		return errors.New("missing user payload")
	}
	return store.SetIdentity(u)
}

func loginSpec() FormSpec {
	return FormSpec{
		Name:           form.Login,
		Schema:         form.LoginSchema(),
		Method:         http.MethodPost,
		Path:           staticPath("/user/login"),
		Encoding:       ports.EncodingJSON,
		Apply:          applyIdentity,
		Redirect:       staticRedirect(guard.PathHome),
		TogglesLoading: true,
	}
}

func signupSpec() FormSpec {
	return FormSpec{
		Name:           form.Signup,
		Schema:         form.SignupSchema(),
		Method:         http.MethodPost,
		Path:           staticPath("/user/register"),
		Encoding:       ports.EncodingMultipart,
		Redirect:       staticRedirect(guard.PathLogin),
		TogglesLoading: true,
	}
}

func profileSpec() FormSpec {
	return FormSpec{
		Name:            form.ProfileUpdate,
		Schema:          form.ProfileSchema(),
		Method:          http.MethodPost,
		Path:            staticPath("/user/profile/update"),
		Encoding:        ports.EncodingMultipart,
		ListFields:      []string{"skills"},
		Apply:           applyIdentity,
		SuccessFallback: "Profile updated",
	}
}

func companyCreateSpec() FormSpec {
	return FormSpec{
		Name:     form.CompanyCreate,
		Schema:   form.CompanyCreateSchema(),
		Method:   http.MethodPost,
		Path:     staticPath("/company/register"),
		Encoding: ports.EncodingJSON,
		Apply: func(env *ports.Envelope, _ form.Input, store *state.Store) error {
			var c domain.Company
			found, err := env.Decode("company", &c)
			if err != nil {
				return err
			}
			if !found || c.ID == "" {
				return errors.New("missing company payload")
			}
			store.Update(func(e state.Entities) state.Entities { return state.UpsertCompany(e, c) })
			return nil
		},
		Redirect: func(env *ports.Envelope, _ form.Input) string {
			var c domain.Company
			if _, err := env.Decode("company", &c); err != nil || c.ID == "" {
				return guard.PathAdminCompanies
			}
			return guard.PathAdminCompanies + "/" + url.PathEscape(c.ID)
		},
		ErrorFallback: "Failed to create company. Please try again.",
	}
}

func companySetupSpec() FormSpec {
	return FormSpec{
		Name:   form.CompanySetup,
		Schema: form.CompanySetupSchema(),
		Method: http.MethodPut,
		Path: func(in form.Input) string {
			return "/company/update/" + url.PathEscape(in.Get(ParamCompanyID))
		},
		PathParams: []string{ParamCompanyID},
		Encoding:   ports.EncodingMultipart,
		// The service answers {success, message}; an echoed company is
		// applied when present.
		Apply: func(env *ports.Envelope, _ form.Input, store *state.Store) error {
			var c domain.Company
			found, err := env.Decode("company", &c)
			if err != nil {
				return err
			}
			if found && c.ID != "" {
				store.Update(func(e state.Entities) state.Entities { return state.UpsertCompany(e, c) })
			}
			return nil
		},
		Redirect: staticRedirect(guard.PathAdminCompanies),
	}
}

func jobPostSpec(store *state.Store) FormSpec {
	return FormSpec{
		Name:     form.JobPost,
		Schema:   form.JobPostSchema(store),
		Method:   http.MethodPost,
		Path:     staticPath("/job/post"),
		Encoding: ports.EncodingJSON,
		JSONBody: func(in form.Input) any {
			body := make(map[string]any, len(in.Fields))
			for k, v := range in.Fields {
				body[k] = v
			}
			// Validation already proved position parses.
			if n, err := strconv.Atoi(in.Get("position")); err == nil {
				body["position"] = n
			}
			return body
		},
		Apply: func(env *ports.Envelope, _ form.Input, store *state.Store) error {
			var job domain.JobPosting
			found, err := env.Decode("job", &job)
			if err != nil {
				return err
			}
			if found && job.ID != "" {
				store.Update(func(e state.Entities) state.Entities {
					e.AdminJobs = append(e.AdminJobs, job.Clone())
					return e
				})
			}
			return nil
		},
		Redirect: staticRedirect(guard.PathAdminJobs),
	}
}

func applyJobSpec(store *state.Store) FormSpec {
	return FormSpec{
		Name: form.ApplyJob,
		Schema: form.SchemaFunc(func(in form.Input) form.Errors {
			errs := form.Errors{}
			if in.Get(ParamJobID) == "" {
				errs.Add(ParamJobID, "Job is required")
			}
			if !store.Session().Authenticated() {
				errs.Add(ParamJobID, "Please login to apply")
			}
			return errs
		}),
		Method: http.MethodGet,
		Path: func(in form.Input) string {
			return "/application/apply/" + url.PathEscape(in.Get(ParamJobID))
		},
		PathParams: []string{ParamJobID},
		Encoding:   ports.EncodingNone,
		// Mirrors the server change locally so the job shows as applied
		// without a refetch.
		Apply: func(_ *ports.Envelope, _ form.Input, store *state.Store) error {
			sess := store.Session()
			if !sess.Authenticated() {
				return nil
			}
			userID := sess.Identity.ID
			store.Update(func(e state.Entities) state.Entities {
				if e.SingleJob == nil || e.SingleJob.HasApplicant(userID) {
					return e
				}
				job := e.SingleJob.Clone()
				job.Applications = append(job.Applications, domain.Application{
					Job:       domain.JobRef{ID: job.ID},
					Applicant: domain.UserRef{ID: userID},
					Status:    domain.ApplicationPending,
				})
				return state.UpsertJob(e, job)
			})
			return nil
		},
		SuccessFallback: "Applied successfully",
	}
}

func applicationStatusSpec() FormSpec {
	return FormSpec{
		Name:   form.ApplicationStatus,
		Schema: form.ApplicationStatusSchema(),
		Method: http.MethodPost,
		Path: func(in form.Input) string {
			return "/application/status/" + url.PathEscape(in.Get(ParamApplicationID)) + "/update"
		},
		PathParams: []string{ParamApplicationID},
		Encoding:   ports.EncodingJSON,
		Apply: func(_ *ports.Envelope, in form.Input, store *state.Store) error {
			id := in.Get(ParamApplicationID)
			status := domain.ApplicationStatus(in.Get("status"))
			store.Update(func(e state.Entities) state.Entities {
				if e.Applicants == nil {
					return e
				}
				job := e.Applicants.Clone()
				for i := range job.Applications {
					if job.Applications[i].ID == id {
						job.Applications[i].Status = status
					}
				}
				return state.SetApplicants(e, &job)
			})
			return nil
		},
		SuccessFallback: "Status updated",
	}
}
