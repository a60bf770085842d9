package state

import (
	"sync"

	"github.com/jobportal/portal-client/internal/core/domain"
)

// Listener is notified after every session change with the new value.
type Listener func(domain.Session)

// Store is the single state container shared by the pipeline, the fetch
// hooks and the route guard. Reads are unrestricted; writes go through the
// named mutation methods only.
type Store struct {
	mu       sync.RWMutex
	session  domain.Session
	entities Entities

	// tickets tracks, per collection, the last issued and last applied fetch.
	issued  map[Collection]uint64
	applied map[Collection]uint64

	listeners []Listener
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		entities: ClearEntities(Entities{}),
		issued:   make(map[Collection]uint64),
		applied:  make(map[Collection]uint64),
	}
}

// OnSessionChange registers l to run after every session mutation.
func (s *Store) OnSessionChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Session returns a copy of the current session.
func (s *Store) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.session)
}

// Entities returns a copy of the current entity caches.
func (s *Store) Entities() Entities {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntities(s.entities)
}

// HasCompany reports whether id is a cached company.
func (s *Store) HasCompany(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.HasCompany(id)
}

// SearchQuery returns the current search query.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entities.SearchQuery
}

// SetIdentity replaces the identity. An incomplete user leaves the session untouched.
func (s *Store) SetIdentity(u domain.User) error {
	return s.updateSession(func(cur domain.Session) (domain.Session, error) {
		return SetIdentity(cur, u)
	})
}

// ClearIdentity removes the identity. Calling it repeatedly is safe.
func (s *Store) ClearIdentity() {
	_ = s.updateSession(func(cur domain.Session) (domain.Session, error) {
		return ClearIdentity(cur), nil
	})
}

// SetLoading sets the session loading flag.
func (s *Store) SetLoading(loading bool) {
	_ = s.updateSession(func(cur domain.Session) (domain.Session, error) {
		return SetLoading(cur, loading), nil
	})
}

// Update applies a reducer to the entity caches.
func (s *Store) Update(reduce func(Entities) Entities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = reduce(s.entities)
}

// BeginFetch issues a ticket for a fetch of collection c.
func (s *Store) BeginFetch(c Collection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[c]++
	return s.issued[c]
}

// ApplyFetch applies reduce only when ticket is newer than the last response
// applied for c, so a slow response never overwrites a fresher one. It
// reports whether the reducer ran.
func (s *Store) ApplyFetch(c Collection, ticket uint64, reduce func(Entities) Entities) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied[c] {
		return false
	}
	s.applied[c] = ticket
	s.entities = reduce(s.entities)
	return true
}

func (s *Store) updateSession(reduce func(domain.Session) (domain.Session, error)) error {
	s.mu.Lock()
	next, err := reduce(s.session)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.session = next
	snapshot := cloneSession(next)
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return nil
}
