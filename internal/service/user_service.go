package service

import (
	"context"
	"errors"
	"fmt"

	"kegwatch/internal/domain"
	"kegwatch/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. An unknown user and a wrong password are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when registering an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrPasswordMismatch is returned when the two registration passwords differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// UserService describes credential lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, realname, password1, password2 string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	users     repository.UserRepository
	passwords *PasswordManager
}

func NewUserService(users repository.UserRepository, passwords *PasswordManager) UserService {
	return &userService{
		users:     users,
		passwords: passwords,
	}
}

// Register creates a new account. Exactly one record may exist per
// username: the store's uniqueness constraint is authoritative, so two
// concurrent registrations cannot both succeed even if both pass the
// advisory pre-check.
func (s *userService) Register(ctx context.Context, username, realname, password1, password2 string) (*domain.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	if realname == "" {
		return nil, errors.New("realname is required")
	}
	if password1 != password2 {
		return nil, ErrPasswordMismatch
	}

	hash, err := s.passwords.Hash(password1)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	user := &domain.User{
		Username:     username,
		RealName:     realname,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

// Authenticate validates a user against the stored credentials. It
// re-reads the store on every call and returns the same failure for an
// unknown user and a bad password.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("retrieve user: %w", err)
	}

	if !s.passwords.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

// Delete removes the account record for username.
func (s *userService) Delete(ctx context.Context, username string) error {
	if err := s.users.Delete(ctx, username); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		RealName:  user.RealName,
		CreatedAt: user.CreatedAt,
	}
}
