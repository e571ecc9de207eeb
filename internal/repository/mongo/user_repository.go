package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

type userDoc struct {
	Username     string    `bson:"username"`
	RealName     string    `bson:"realname"`
	PasswordHash string    `bson:"hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &UserRepository{users: db.Collection("users")}
}

func (r *UserRepository) Init(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	_, err := r.users.InsertOne(ctx, userDoc{
		Username:     user.Username,
		RealName:     user.RealName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, fmt.Errorf("insert user: %w", repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return 0, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.User{
		Username:     doc.Username,
		RealName:     doc.RealName,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	if _, err := r.users.DeleteOne(ctx, bson.M{"username": username}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
