package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
)

// fallbackTTL applies when a snapshot carries no expiry.
const fallbackTTL = 24 * time.Hour

// SessionRepository stores the session snapshot as JSON under a single key
// that expires with the session token.
// Key format: portal:session:<name>
type SessionRepository struct {
	client *redis.Client
	name   string
	now    func() time.Time
}

// NewSessionRepository creates a SessionRepository for the session called name.
func NewSessionRepository(client *redis.Client, name string) *SessionRepository {
	return &SessionRepository{client: client, name: name, now: time.Now}
}

func (r *SessionRepository) Save(ctx context.Context, snap ports.SessionSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := r.ttl(snap.ExpiresAt)
	if ttl <= 0 {
		return r.Delete(ctx)
	}
	if err := r.client.Set(ctx, r.key(), b, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context) (*ports.SessionSnapshot, error) {
	b, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var snap ports.SessionSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &snap, nil
}

func (r *SessionRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ttl(expiresAt time.Time) time.Duration {
	if expiresAt.IsZero() {
		return fallbackTTL
	}
	return expiresAt.Sub(r.now())
}

func (r *SessionRepository) key() string {
	return fmt.Sprintf("portal:session:%s", r.name)
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
