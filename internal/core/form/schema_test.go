package form

import (
	"bytes"
	"strings"
	"testing"
)

type stubCompanies map[string]bool

func (s stubCompanies) HasCompany(id string) bool { return s[id] }

func validJobPost() map[string]string {
	return map[string]string{
		"title":        "Backend Engineer",
		"description":  "Build APIs",
		"requirements": "Go, SQL",
		"salary":       "12",
		"location":     "Remote",
		"jobType":      "Full Time",
		"experience":   "2",
		"position":     "3",
		"companyId":    "co_1",
	}
}

func TestSchemas_RequiredFieldsEmpty(t *testing.T) {
	cases := []struct {
		name   string
		schema Schema
		fields []string
	}{
		{Login, LoginSchema(), []string{"email", "password", "role"}},
		{Signup, SignupSchema(), []string{"fullname", "email", "phoneNumber", "password", "role"}},
		{ProfileUpdate, ProfileSchema(), []string{"fullname", "email", "phoneNumber", "bio", "skills"}},
		{CompanyCreate, CompanyCreateSchema(), []string{"companyName"}},
		{CompanySetup, CompanySetupSchema(), []string{"name", "description", "website", "location"}},
		{JobPost, JobPostSchema(stubCompanies{}), []string{"title", "description", "requirements", "salary", "location", "jobType", "experience", "position", "companyId"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.schema.Validate(Text(map[string]string{}))
			if errs.Empty() {
				t.Fatalf("expected errors for empty input")
			}
			for _, f := range tc.fields {
				if _, ok := errs[f]; !ok {
					t.Errorf("expected error for %s, got %v", f, errs)
				}
			}
		})
	}
}

func TestLoginSchema(t *testing.T) {
	errs := LoginSchema().Validate(Text(map[string]string{
		"email": "a@b.com", "password": "x", "role": "candidate",
	}))
	if !errs.Empty() {
		t.Fatalf("expected valid login, got %v", errs)
	}

	errs = LoginSchema().Validate(Text(map[string]string{
		"email": "not-an-email", "password": "x", "role": "recruiter",
	}))
	if errs["email"] != "Invalid email" {
		t.Errorf("unexpected email error: %q", errs["email"])
	}
	if errs["role"] != "Invalid role" {
		t.Errorf("unexpected role error: %q", errs["role"])
	}
}

func TestSignupSchema_PhoneAndPassword(t *testing.T) {
	errs := SignupSchema().Validate(Text(map[string]string{
		"fullname": "Ada", "email": "ada@b.com", "phoneNumber": "12345",
		"password": "123", "role": "admin",
	}))
	if errs["phoneNumber"] != "Phone number must be 10 digits" {
		t.Errorf("unexpected phone error: %q", errs["phoneNumber"])
	}
	if errs["password"] != "Password must be at least 6 characters" {
		t.Errorf("unexpected password error: %q", errs["password"])
	}
	if len(errs) != 2 {
		t.Errorf("expected exactly two errors, got %v", errs)
	}
}

func TestCompanyCreateSchema_Length(t *testing.T) {
	errs := CompanyCreateSchema().Validate(Text(map[string]string{"companyName": "A"}))
	if errs["companyName"] != "Company name must be at least 2 characters" {
		t.Fatalf("unexpected error: %v", errs)
	}
	errs = CompanyCreateSchema().Validate(Text(map[string]string{"companyName": strings.Repeat("x", 51)}))
	if errs["companyName"] != "Company name must be less than 50 characters" {
		t.Fatalf("unexpected error: %v", errs)
	}
}

func TestCompanySetupSchema_Website(t *testing.T) {
	errs := CompanySetupSchema().Validate(Text(map[string]string{
		"name": "Acme", "description": "d", "website": "acme", "location": "Pune",
	}))
	if errs["website"] != "Invalid URL" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestJobPostSchema_ParsesPosition(t *testing.T) {
	companies := stubCompanies{"co_1": true}

	if errs := JobPostSchema(companies).Validate(Text(validJobPost())); !errs.Empty() {
		t.Fatalf("expected valid job post, got %v", errs)
	}

	for value, want := range map[string]string{
		"abc": "position must be a whole number",
		"1.5": "position must be a whole number",
		"-2":  "Position must be positive",
		"0":   "Number of positions is required",
	} {
		fields := validJobPost()
		fields["position"] = value
		errs := JobPostSchema(companies).Validate(Text(fields))
		if errs["position"] != want {
			t.Errorf("position %q: got %q, want %q", value, errs["position"], want)
		}
	}
}

func TestJobPostSchema_UnknownCompany(t *testing.T) {
	errs := JobPostSchema(stubCompanies{"co_2": true}).Validate(Text(validJobPost()))
	if _, ok := errs["companyId"]; !ok || len(errs) != 1 {
		t.Fatalf("expected only a companyId error, got %v", errs)
	}
}

func TestProfileSchema_ResumeMustBePDF(t *testing.T) {
	fields := map[string]string{
		"fullname": "Ada", "email": "ada@b.com", "phoneNumber": "9876543210",
		"bio": "hi", "skills": "go, sql",
	}

	tiny := &File{Filename: "cv.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 10}
	errs := ProfileSchema().Validate(Input{Fields: fields, Files: map[string]*File{"file": tiny}})
	if errs["file"] != "Only PDF files are allowed" || len(errs) != 1 {
		t.Fatalf("expected field-scoped file error, got %v", errs)
	}

	huge := &File{Filename: "cv.pdf", ContentType: "application/pdf", Size: 50 * MaxImageBytes}
	if errs := ProfileSchema().Validate(Input{Fields: fields, Files: map[string]*File{"file": huge}}); !errs.Empty() {
		t.Fatalf("expected PDF without size cap to pass, got %v", errs)
	}

	if errs := ProfileSchema().Validate(Text(fields)); !errs.Empty() {
		t.Fatalf("expected absent file to pass, got %v", errs)
	}
}

func TestFileRule_SniffsUndeclaredType(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)

	f := &File{Filename: "logo", Content: png}
	if msg := imageRule.Check(f); msg != "" {
		t.Fatalf("expected sniffed png to pass, got %q", msg)
	}

	f = &File{Filename: "logo", ContentType: "application/octet-stream", Content: []byte("%PDF-1.4\n")}
	if msg := imageRule.Check(f); msg != "Only image files are allowed" {
		t.Fatalf("expected sniffed pdf to be rejected, got %q", msg)
	}
}

func TestFileRule_SizeCeiling(t *testing.T) {
	f := &File{Filename: "logo.png", ContentType: "image/png", Size: MaxImageBytes + 1}
	if msg := imageRule.Check(f); msg != "File is too large" {
		t.Fatalf("expected size error, got %q", msg)
	}
	f.Size = MaxImageBytes
	if msg := imageRule.Check(f); msg != "" {
		t.Fatalf("expected file at the ceiling to pass, got %q", msg)
	}
}
