package domain

import "strings"

// Role is the portal actor type carried on every identity.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleAdmin
}

// Profile holds the candidate-facing part of a user record.
type Profile struct {
	Bio                string   `json:"bio"`
	Skills             []string `json:"skills"`
	Resume             string   `json:"resume,omitempty"`
	ResumeOriginalName string   `json:"resumeOriginalName,omitempty"`
	ProfilePhoto       string   `json:"profilePhoto,omitempty"`
}

// User is the authenticated identity returned by the remote service.
type User struct {
	ID          string  `json:"_id"`
	Fullname    string  `json:"fullname"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Role        Role    `json:"role"`
	Profile     Profile `json:"profile"`
}

// Valid reports whether u is a fully formed identity: it must carry a
// server-assigned id, an email and a known role.
func (u User) Valid() bool {
	return strings.TrimSpace(u.ID) != "" &&
		strings.TrimSpace(u.Email) != "" &&
		u.Role.Valid()
}

// Clone returns a deep copy so store snapshots never share slices.
func (u User) Clone() User {
	c := u
	if u.Profile.Skills != nil {
		c.Profile.Skills = append([]string(nil), u.Profile.Skills...)
	}
	return c
}
