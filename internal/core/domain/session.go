package domain

// Session is the client-held authentication state. Identity is either nil
// or a fully formed User; partial users are never stored.
type Session struct {
	Identity  *User `json:"identity,omitempty"`
	IsLoading bool  `json:"isLoading"`
}

// Authenticated reports whether an identity is present.
func (s Session) Authenticated() bool {
	return s.Identity != nil
}

// Role returns the identity role, or "" when no identity is present.
func (s Session) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
