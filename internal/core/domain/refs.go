package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The remote service populates references inconsistently: the same key may
// hold an id string or the embedded document. These types accept both.

// CompanyRef is a reference to a Company by id, optionally embedded.
type CompanyRef struct {
	ID      string
	Company *Company
}

func (r *CompanyRef) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*r = CompanyRef{}
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var c Company
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	*r = CompanyRef{ID: c.ID, Company: &c}
	return nil
}

func (r CompanyRef) MarshalJSON() ([]byte, error) {
	if r.Company != nil {
		return json.Marshal(r.Company)
	}
	return json.Marshal(r.ID)
}

// JobRef is a reference to a JobPosting by id, optionally embedded.
type JobRef struct {
	ID  string
	Job *JobPosting
}

func (r *JobRef) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*r = JobRef{}
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var j JobPosting
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	*r = JobRef{ID: j.ID, Job: &j}
	return nil
}

func (r JobRef) MarshalJSON() ([]byte, error) {
	if r.Job != nil {
		return json.Marshal(r.Job)
	}
	return json.Marshal(r.ID)
}

// UserRef is a reference to a User by id, optionally embedded.
type UserRef struct {
	ID   string
	User *User
}

func (r *UserRef) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*r = UserRef{}
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	*r = UserRef{ID: u.ID, User: &u}
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.ID)
}

// StringList accepts a JSON array of strings or a single comma separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*l = nil
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = SplitList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// FlexString accepts a JSON string or number and keeps its textual form.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Int parses f as an integer, returning false when it is not numeric.
func (f FlexString) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	return n, err == nil
}

// SplitList splits a comma separated value into trimmed, non-empty tokens.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}
