package ports

import (
	"context"
	"time"

	"github.com/jobportal/portal-client/internal/core/domain"
)

// SessionSnapshot is what survives a restart when persistence is enabled.
type SessionSnapshot struct {
	User      domain.User `json:"user" bson:"user"`
	Token     string      `json:"token" bson:"token"`
	SavedAt   time.Time   `json:"savedAt" bson:"saved_at"`
	ExpiresAt time.Time   `json:"expiresAt" bson:"expires_at"`
}

// SessionRepository persists the single client session.
type SessionRepository interface {
	Save(ctx context.Context, snap SessionSnapshot) error
	// Load returns domain.ErrSessionNotFound when nothing is stored.
	Load(ctx context.Context) (*SessionSnapshot, error)
	Delete(ctx context.Context) error
}
