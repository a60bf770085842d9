package form

import (
	"errors"
	"testing"

	"github.com/jobportal/portal-client/internal/core/domain"
)

func TestDraft_RevalidatesOnChange(t *testing.T) {
	d := NewDraft(Login, LoginSchema(), Text(map[string]string{}))
	if d.Errors().Empty() {
		t.Fatalf("expected errors on an empty draft")
	}

	d.Set("email", "a@b.com")
	d.Set("password", "x")
	errs, err := d.Set("role", "admin")
	if err != nil || !errs.Empty() {
		t.Fatalf("expected draft to become valid, got %v %v", errs, err)
	}

	errs, _ = d.Set("email", "")
	if errs["email"] != "Email is required" {
		t.Fatalf("expected email error after clearing, got %v", errs)
	}
	if d.Errors()["email"] != "Email is required" {
		t.Fatalf("expected Errors to reflect the last run, got %v", d.Errors())
	}
}

func TestDraft_SetFileAttachesAndDetaches(t *testing.T) {
	d := NewDraft(ProfileUpdate, ProfileSchema(), Text(map[string]string{}))

	errs, err := d.SetFile("file", &File{Filename: "cv.png", ContentType: "image/png", Size: 10})
	if err != nil || errs["file"] == "" {
		t.Fatalf("expected a file error for a non-PDF resume, got %v %v", errs, err)
	}
	errs, _ = d.SetFile("file", nil)
	if errs["file"] != "" {
		t.Fatalf("expected detached file to pass, got %v", errs)
	}
	if d.Values().File("file") != nil {
		t.Fatal("expected file detached")
	}
}

func TestDraft_InFlightIsExclusive(t *testing.T) {
	d := NewDraft(Login, LoginSchema(), Text(map[string]string{}))
	if !d.Acquire() {
		t.Fatalf("first acquire must succeed")
	}
	if d.Acquire() {
		t.Fatalf("second acquire must fail while in flight")
	}
	d.Release()
	if d.InFlight() {
		t.Fatalf("expected released draft")
	}
	if !d.Acquire() {
		t.Fatalf("acquire after release must succeed")
	}
}

func TestDraft_EditsRefusedWhileInFlight(t *testing.T) {
	d := NewDraft(Login, LoginSchema(), Text(map[string]string{"email": "a@b.com"}))
	d.Acquire()

	if _, err := d.Replace(Text(map[string]string{"email": "other@b.com"})); !errors.Is(err, domain.ErrSubmissionInFlight) {
		t.Fatalf("expected Replace refused, got %v", err)
	}
	if _, err := d.Set("email", "other@b.com"); !errors.Is(err, domain.ErrSubmissionInFlight) {
		t.Fatalf("expected Set refused, got %v", err)
	}
	if _, err := d.SetFile("file", &File{Filename: "x.pdf"}); !errors.Is(err, domain.ErrSubmissionInFlight) {
		t.Fatalf("expected SetFile refused, got %v", err)
	}
	if d.Values().Get("email") != "a@b.com" {
		t.Fatalf("values changed while in flight: %v", d.Values().Fields)
	}

	d.Release()
	if _, err := d.Replace(Text(map[string]string{"email": "other@b.com"})); err != nil {
		t.Fatalf("expected Replace accepted after release, got %v", err)
	}
}

func TestDraft_SnapshotMatchesValues(t *testing.T) {
	d := NewDraft(Login, LoginSchema(), Text(map[string]string{"email": "bad"}))

	values, errs := d.Snapshot()
	if values.Get("email") != "bad" || errs["email"] == "" {
		t.Fatalf("unexpected snapshot %v %v", values.Fields, errs)
	}
	values.Fields["email"] = "changed"
	if d.Values().Get("email") != "bad" {
		t.Fatal("snapshot leaked into the draft")
	}
}

func TestDraft_ValuesAreCopies(t *testing.T) {
	d := NewDraft(CompanyCreate, CompanyCreateSchema(), Text(map[string]string{"companyName": "Acme"}))
	v := d.Values()
	v.Fields["companyName"] = "Other"
	if d.Values().Get("companyName") != "Acme" {
		t.Fatalf("draft values leaked through copy")
	}
}
