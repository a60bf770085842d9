package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/guard"
	"github.com/jobportal/portal-client/internal/core/ports"
	"github.com/jobportal/portal-client/internal/core/state"
)

// DefaultSessionTTL bounds a snapshot whose token carries no expiry.
const DefaultSessionTTL = 24 * time.Hour

// SessionService owns the session actions that are not form submissions:
// logout, search and, when a repository is configured, persistence.
type SessionService struct {
	api    ports.PortalAPI
	store  *state.Store
	nav    ports.Navigator
	notify ports.Notifier
	creds  ports.Credentials
	repo   ports.SessionRepository
	now    func() time.Time
	log    zerolog.Logger

	mu   sync.Mutex
	last *domain.User
}

// NewSessionService wires a SessionService. repo may be nil, in which case
// the session lives only as long as the process.
func NewSessionService(api ports.PortalAPI, store *state.Store, nav ports.Navigator, notify ports.Notifier, creds ports.Credentials, repo ports.SessionRepository, log zerolog.Logger) *SessionService {
	return &SessionService{
		api:    api,
		store:  store,
		nav:    nav,
		notify: notify,
		creds:  creds,
		repo:   repo,
		now:    time.Now,
		log:    log,
	}
}

// Logout ends the session on the service, then clears the identity and
// returns to the landing page. A failed call leaves the session untouched.
func (s *SessionService) Logout(ctx context.Context) (string, error) {
	env, err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/user/logout"})
	if err != nil {
		s.notify.Error(DefaultErrorMessage)
		return s.nav.Location(), &SubmitError{Form: "logout", Kind: domain.ErrTransportFailure, Message: DefaultErrorMessage, Err: err}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = DefaultErrorMessage
		}
		s.notify.Error(msg)
		return s.nav.Location(), &SubmitError{Form: "logout", Kind: domain.ErrServerRejected, Message: msg}
	}

	s.store.ClearIdentity()
	if s.creds != nil {
		if err := s.creds.ClearToken(); err != nil {
			s.log.Warn().Err(err).Msg("failed to clear session cookie")
		}
	}
	if env.Message != "" {
		s.notify.Success(env.Message)
	}
	s.log.Info().Msg("logged out")
	return s.nav.Navigate(guard.PathHome), nil
}

// Search records query for the next job list fetch and opens the browse
// screen.
func (s *SessionService) Search(query string) string {
	s.store.Update(func(e state.Entities) state.Entities { return state.SetSearchQuery(e, query) })
	return s.nav.Navigate(guard.PathBrowse)
}

// Watch persists every identity change. Loading-only changes are skipped.
func (s *SessionService) Watch(ctx context.Context) {
	if s.repo == nil {
		return
	}
	s.store.OnSessionChange(func(sess domain.Session) {
		s.mu.Lock()
		changed := !reflect.DeepEqual(s.last, sess.Identity)
		s.last = sess.Identity
		s.mu.Unlock()
		if !changed {
			return
		}
		if err := s.Persist(ctx, sess); err != nil {
			s.log.Error().Err(err).Msg("failed to persist session")
		}
	})
}

// Persist writes or deletes the snapshot for sess.
func (s *SessionService) Persist(ctx context.Context, sess domain.Session) error {
	if s.repo == nil {
		return nil
	}
	if sess.Identity == nil {
		if err := s.repo.Delete(ctx); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	}

	now := s.now()
	snap := ports.SessionSnapshot{User: sess.Identity.Clone(), SavedAt: now, ExpiresAt: now.Add(DefaultSessionTTL)}
	if s.creds != nil {
		snap.Token = s.creds.Token()
	}
	if snap.Token != "" {
		if exp, err := tokenExpiry(snap.Token); err == nil && !exp.IsZero() {
			snap.ExpiresAt = exp
		}
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Rehydrate restores a stored session. It reports whether an identity was
// restored; an expired or unreadable snapshot is deleted.
func (s *SessionService) Rehydrate(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	snap, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}

	now := s.now()
	expired := !snap.ExpiresAt.IsZero() && !now.Before(snap.ExpiresAt)
	if snap.Token != "" {
		exp, err := tokenExpiry(snap.Token)
		if err != nil {
			s.log.Warn().Err(err).Msg("stored session token unreadable")
			expired = true
		} else if !exp.IsZero() && !now.Before(exp) {
			expired = true
		}
	}
	if expired {
		s.log.Info().Msg("stored session expired")
		if err := s.repo.Delete(ctx); err != nil {
			return false, fmt.Errorf("delete session: %w", err)
		}
		return false, nil
	}

	if snap.Token != "" && s.creds != nil {
		if err := s.creds.SetToken(snap.Token); err != nil {
			return false, fmt.Errorf("restore token: %w", err)
		}
	}
	if err := s.store.SetIdentity(snap.User); err != nil {
		return false, fmt.Errorf("restore identity: %w", err)
	}
	s.mu.Lock()
	s.last = s.store.Session().Identity
	s.mu.Unlock()

	s.log.Info().Str("user_id", snap.User.ID).Str("role", string(snap.User.Role)).Msg("session restored")
	return true, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client never holds the signing key. A token without exp yields zero.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
