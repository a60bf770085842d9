package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobportal/portal-client/internal/core/domain"
	"github.com/jobportal/portal-client/internal/core/ports"
)

const sessionCollection = "portal_sessions"

// SessionRepository keeps one document per named session in portal_sessions.
type SessionRepository struct {
	coll *mongo.Collection
	name string
}

func NewSessionRepository(db *mongo.Database, name string) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection), name: name}
}

type mongoProfile struct {
	Bio                string   `bson:"bio"`
	Skills             []string `bson:"skills"`
	Resume             string   `bson:"resume,omitempty"`
	ResumeOriginalName string   `bson:"resume_original_name,omitempty"`
	ProfilePhoto       string   `bson:"profile_photo,omitempty"`
}

type mongoSession struct {
	Name        string       `bson:"_id"`
	UserID      string       `bson:"user_id"`
	Fullname    string       `bson:"fullname"`
	Email       string       `bson:"email"`
	PhoneNumber string       `bson:"phone_number"`
	Role        string       `bson:"role"`
	Profile     mongoProfile `bson:"profile"`
	Token       string       `bson:"token"`
	SavedAt     time.Time    `bson:"saved_at"`
	ExpiresAt   time.Time    `bson:"expires_at"`
}

func (r *SessionRepository) Save(ctx context.Context, snap ports.SessionSnapshot) error {
	doc := toDocument(r.name, snap)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": r.name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context) (*ports.SessionSnapshot, error) {
	var doc mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"_id": r.name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	snap := fromDocument(doc)
	return &snap, nil
}

func (r *SessionRepository) Delete(ctx context.Context) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": r.name}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func toDocument(name string, snap ports.SessionSnapshot) mongoSession {
	u := snap.User
	return mongoSession{
		Name:        name,
		UserID:      u.ID,
		Fullname:    u.Fullname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Profile: mongoProfile{
			Bio:                u.Profile.Bio,
			Skills:             u.Profile.Skills,
			Resume:             u.Profile.Resume,
			ResumeOriginalName: u.Profile.ResumeOriginalName,
			ProfilePhoto:       u.Profile.ProfilePhoto,
		},
		Token:     snap.Token,
		SavedAt:   snap.SavedAt.UTC(),
		ExpiresAt: snap.ExpiresAt.UTC(),
	}
}

func fromDocument(doc mongoSession) ports.SessionSnapshot {
	return ports.SessionSnapshot{
		User: domain.User{
			ID:          doc.UserID,
			Fullname:    doc.Fullname,
			Email:       doc.Email,
			PhoneNumber: doc.PhoneNumber,
			Role:        domain.Role(doc.Role),
			Profile: domain.Profile{
				Bio:                doc.Profile.Bio,
				Skills:             doc.Profile.Skills,
				Resume:             doc.Profile.Resume,
				ResumeOriginalName: doc.Profile.ResumeOriginalName,
				ProfilePhoto:       doc.Profile.ProfilePhoto,
			},
		},
		Token:     doc.Token,
		SavedAt:   doc.SavedAt,
		ExpiresAt: doc.ExpiresAt,
	}
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
