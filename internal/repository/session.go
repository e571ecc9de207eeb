package repository

import (
	"context"

	"kegwatch/internal/domain"
)

// SessionRepository defines persistence operations for Session records.
// Delete is idempotent: deleting an absent token is not an error.
type SessionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
