package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

// SessionService manages the session token lifecycle: issue on login,
// lazy-evicting validation, idempotent delete. Expiry is absolute; a
// session is never extended.
type SessionService interface {
	Create(ctx context.Context, username string) (*domain.Session, error)
	Validate(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type sessionService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(sessions repository.SessionRepository, ttl time.Duration) SessionService {
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a fresh UUID v4 token expiring ttl from now and persists
// it. On a store failure no token is returned; the caller must surface an
// authentication error rather than a partial success.
func (s *sessionService) Create(ctx context.Context, username string) (*domain.Session, error) {
	session := &domain.Session{
		Username: username,
		Token:    uuid.NewString(),
		Expiry:   s.now().Add(s.ttl).Unix(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Validate reports whether token names a live session. An expired session
// is deleted on first sight and reported invalid; an unknown token is
// simply invalid. The error return is reserved for store failures.
func (s *sessionService) Validate(ctx context.Context, token string) (bool, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("retrieve session: %w", err)
	}

	if s.now().Unix() >= session.Expiry {
		// Lazy eviction: no background sweep exists.
		if err := s.sessions.Delete(ctx, token); err != nil {
			return false, fmt.Errorf("evict expired session: %w", err)
		}
		return false, nil
	}
	return true, nil
}

// Delete revokes token. Deleting an unknown token succeeds.
func (s *sessionService) Delete(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
