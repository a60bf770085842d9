// Package state is the client's process-wide state container. Every mutation
// is a pure reducer over an immutable value; Store serialises them and hands
// out copies so readers never observe a partial write.
package state

import (
	"fmt"

	"github.com/jobportal/portal-client/internal/core/domain"
)

// SetIdentity replaces the identity atomically. Incomplete users are refused.
func SetIdentity(s domain.Session, u domain.User) (domain.Session, error) {
	if !u.Valid() {
		return s, fmt.Errorf("set identity: %w", domain.ErrIncompleteIdentity)
	}
	c := u.Clone()
	s.Identity = &c
	return s, nil
}

// ClearIdentity removes the identity. Clearing an empty session is a no-op.
func ClearIdentity(s domain.Session) domain.Session {
	s.Identity = nil
	return s
}

// SetLoading sets the session loading flag.
func SetLoading(s domain.Session, loading bool) domain.Session {
	s.IsLoading = loading
	return s
}

func cloneSession(s domain.Session) domain.Session {
	if s.Identity != nil {
		c := s.Identity.Clone()
		s.Identity = &c
	}
	return s
}
