package form

// LoginForm is the typed view of the login screen.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required,oneof=candidate admin"`
}

// SignupForm is the typed view of the signup screen. The profile photo is
// carried as the optional "file" part.
type SignupForm struct {
	Fullname    string `form:"fullname" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" validate:"required,phone10"`
	Password    string `form:"password" validate:"required,min=6"`
	Role        string `form:"role" validate:"required,oneof=candidate admin"`
}

// ProfileForm is the typed view of the profile update dialog. Skills is the
// comma separated text as typed; it is tokenised at serialisation time.
type ProfileForm struct {
	Fullname    string `form:"fullname" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	PhoneNumber string `form:"phoneNumber" validate:"required,phone10"`
	Bio         string `form:"bio" validate:"required"`
	Skills      string `form:"skills" validate:"required"`
}

// CompanyCreateForm registers a company by name only.
type CompanyCreateForm struct {
	CompanyName string `form:"companyName" validate:"required,min=2,max=50"`
}

// CompanySetupForm enriches an existing company.
type CompanySetupForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Website     string `form:"website" validate:"required,url"`
	Location    string `form:"location" validate:"required"`
}

// JobPostForm is the typed view of the job posting screen.
type JobPostForm struct {
	Title        string `form:"title" validate:"required"`
	Description  string `form:"description" validate:"required"`
	Requirements string `form:"requirements" validate:"required"`
	Salary       string `form:"salary" validate:"required"`
	Location     string `form:"location" validate:"required"`
	JobType      string `form:"jobType" validate:"required"`
	Experience   string `form:"experience" validate:"required"`
	Position     int    `form:"position" validate:"required,gt=0"`
	CompanyID    string `form:"companyId" validate:"required"`
}

// ApplicationStatusForm updates the review state of one application.
type ApplicationStatusForm struct {
	Status string `form:"status" validate:"required,oneof=accepted rejected"`
}

var imageRule = FileRule{
	Allowed:     []string{"image/*"},
	MaxBytes:    MaxImageBytes,
	TypeMessage: "Only image files are allowed",
	SizeMessage: "File is too large",
}

var resumeRule = FileRule{
	Allowed:     []string{"application/pdf"},
	TypeMessage: "Only PDF files are allowed",
}

// LoginSchema validates the login screen.
func LoginSchema() Schema {
	return structSchema[LoginForm]{messages: map[string]string{
		"email.required":    "Email is required",
		"password.required": "Password is required",
		"role.required":     "Role is required",
		"role.oneof":        "Invalid role",
	}}
}

// SignupSchema validates the signup screen.
func SignupSchema() Schema {
	return structSchema[SignupForm]{
		messages: map[string]string{
			"fullname.required":    "Full name is required",
			"email.required":       "Email is required",
			"phoneNumber.required": "Phone number is required",
			"phoneNumber.phone10":  "Phone number must be 10 digits",
			"password.required":    "Password is required",
			"password.min":         "Password must be at least 6 characters",
			"role.required":        "Role is required",
			"role.oneof":           "Invalid role",
		},
		files: map[string]FileRule{"file": imageRule},
	}
}

// ProfileSchema validates the profile update dialog.
func ProfileSchema() Schema {
	return structSchema[ProfileForm]{
		messages: map[string]string{
			"fullname.required":    "Full name is required",
			"email.required":       "Email is required",
			"phoneNumber.required": "Phone number is required",
			"phoneNumber.phone10":  "Phone number must be 10 digits",
			"bio.required":         "Bio is required",
			"skills.required":      "Skills are required",
		},
		files: map[string]FileRule{"file": resumeRule},
	}
}

// CompanyCreateSchema validates the company registration screen.
func CompanyCreateSchema() Schema {
	return structSchema[CompanyCreateForm]{messages: map[string]string{
		"companyName.required": "Company name is required",
		"companyName.min":      "Company name must be at least 2 characters",
		"companyName.max":      "Company name must be less than 50 characters",
	}}
}

// CompanySetupSchema validates the company setup screen.
func CompanySetupSchema() Schema {
	return structSchema[CompanySetupForm]{
		messages: map[string]string{
			"name.required":        "Company name is required",
			"description.required": "Description is required",
			"website.required":     "Website is required",
			"location.required":    "Location is required",
		},
		files: map[string]FileRule{"file": imageRule},
	}
}

// JobPostSchema validates the job posting screen. companies is consulted on
// every run so a company fetched after mount becomes selectable.
func JobPostSchema(companies CompanyLookup) Schema {
	return structSchema[JobPostForm]{
		messages: map[string]string{
			"title.required":        "Title is required",
			"description.required":  "Description is required",
			"requirements.required": "Requirements are required",
			"salary.required":       "Salary is required",
			"location.required":     "Location is required",
			"jobType.required":      "Job type is required",
			"experience.required":   "Experience level is required",
			"position.required":     "Number of positions is required",
			"position.gt":           "Position must be positive",
			"companyId.required":    "Company is required",
		},
		checks: []func(JobPostForm) Errors{
			func(f JobPostForm) Errors {
				errs := Errors{}
				if f.CompanyID != "" && (companies == nil || !companies.HasCompany(f.CompanyID)) {
					errs.Add("companyId", "Please register a company first, before posting a job")
				}
				return errs
			},
		},
	}
}

// ApplicationStatusSchema validates an applicant status change.
func ApplicationStatusSchema() Schema {
	return structSchema[ApplicationStatusForm]{messages: map[string]string{
		"status.required": "Status is required",
		"status.oneof":    "Invalid status",
	}}
}
