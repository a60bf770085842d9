package form

// Form names. They double as the submission identifiers used by screens.
const (
	Login             = "login"
	Signup            = "signup"
	ProfileUpdate     = "profile-update"
	CompanyCreate     = "company-create"
	CompanySetup      = "company-setup"
	JobPost           = "job-post"
	ApplicationStatus = "application-status"
	ApplyJob          = "apply-job"
)

// Schema validates a full input set for one form.
type Schema interface {
	Validate(in Input) Errors
}

// CompanyLookup answers whether a company id is known to the client caches.
type CompanyLookup interface {
	HasCompany(id string) bool
}

// structSchema binds the input into T, runs T's struct tags, then the file
// rules and the cross-field checks. The first error per field wins, so a
// parse failure is not masked by a later range check on the zero value.
type structSchema[T any] struct {
	messages map[string]string
	files    map[string]FileRule
	checks   []func(T) Errors
}

func (s structSchema[T]) Validate(in Input) Errors {
	var v T
	errs := bind(in, &v)
	errs.Merge(validateStruct(v, s.messages))
	for field, rule := range s.files {
		if msg := rule.Check(in.File(field)); msg != "" {
			errs.Add(field, msg)
		}
	}
	for _, check := range s.checks {
		errs.Merge(check(v))
	}
	return errs
}

// SchemaFunc adapts a plain function to Schema.
type SchemaFunc func(Input) Errors

func (f SchemaFunc) Validate(in Input) Errors { return f(in) }

// None accepts every input. Used by forms without user-entered fields.
var None Schema = SchemaFunc(func(Input) Errors { return Errors{} })
