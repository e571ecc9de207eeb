package repository

import (
	"context"

	"kegwatch/internal/domain"
)

// UserRepository defines persistence operations for User records.
// Create must enforce username uniqueness and return ErrDuplicate on
// conflict, so that concurrent registrations cannot both succeed.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}
