// Package guard decides, from the session alone, whether a screen may render
// or where the user must be sent instead.
package guard

import (
	"strings"

	"github.com/jobportal/portal-client/internal/core/domain"
)

// Well-known screen paths.
const (
	PathHome           = "/"
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathJobs           = "/jobs"
	PathBrowse         = "/browse"
	PathProfile        = "/profile"
	PathAdminCompanies = "/admin/companies"
	PathAdminJobs      = "/admin/jobs"
)

// Access is the audience a screen is restricted to.
type Access int

const (
	Public Access = iota
	GuestOnly
	CandidateOnly
	AdminOnly
)

// Rule binds a path prefix to an access level. Prefix "/admin" matches
// "/admin" and "/admin/..." but not "/administer".
type Rule struct {
	Prefix string
	Access Access
}

// Decision is the outcome of a guard check. Redirect is empty when the
// screen may render.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// DefaultRules is the portal's routing policy.
var DefaultRules = []Rule{
	{Prefix: "/admin", Access: AdminOnly},
	{Prefix: PathProfile, Access: CandidateOnly},
	{Prefix: PathLogin, Access: GuestOnly},
	{Prefix: PathSignup, Access: GuestOnly},
}

// Guard evaluates Rules in order; the first matching rule applies.
type Guard struct {
	rules []Rule
}

// New returns a Guard over rules, or DefaultRules when none are given.
func New(rules ...Rule) *Guard {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Guard{rules: rules}
}

// Decide reports whether path may render for session s.
func (g *Guard) Decide(path string, s domain.Session) Decision {
	path = Clean(path)

	// An admin never sees the candidate landing page.
	if path == PathHome && s.Role() == domain.RoleAdmin {
		return Decision{Redirect: PathAdminCompanies, Reason: "admin landing"}
	}

	switch g.access(path) {
	case GuestOnly:
		if s.Authenticated() {
			return Decision{Redirect: PathHome, Reason: "already authenticated"}
		}
	case CandidateOnly:
		return requireRole(s, domain.RoleCandidate)
	case AdminOnly:
		return requireRole(s, domain.RoleAdmin)
	}
	return Decision{Allowed: true}
}

// Access returns the access level configured for path.
func (g *Guard) access(path string) Access {
	for _, r := range g.rules {
		if path == r.Prefix || strings.HasPrefix(path, strings.TrimSuffix(r.Prefix, "/")+"/") {
			return r.Access
		}
	}
	return Public
}

func requireRole(s domain.Session, role domain.Role) Decision {
	if !s.Authenticated() {
		return Decision{Redirect: PathLogin, Reason: "authentication required"}
	}
	if s.Role() != role {
		return Decision{Redirect: PathHome, Reason: "role " + string(role) + " required"}
	}
	return Decision{Allowed: true}
}

// Clean normalises a screen path: leading slash, no trailing slash, no query.
func Clean(path string) string {
	path, _, _ = strings.Cut(path, "?")
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	return path
}
