package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

type sessionDoc struct {
	Username string `bson:"username"`
	Token    string `bson:"token"`
	Expiry   int64  `bson:"expiry"`
}

type SessionRepository struct {
	sessions *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &SessionRepository{sessions: db.Collection("sessions")}
}

func (r *SessionRepository) Init(ctx context.Context) error {
	_, err := r.sessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create token index: %w", err)
	}
	return nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.sessions.InsertOne(ctx, sessionDoc{
		Username: session.Username,
		Token:    session.Token,
		Expiry:   session.Expiry,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert session: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var doc sessionDoc
	if err := r.sessions.FindOne(ctx, bson.M{"token": token}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &domain.Session{
		Username: doc.Username,
		Token:    doc.Token,
		Expiry:   doc.Expiry,
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.sessions.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
