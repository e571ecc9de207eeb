package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kegwatch/internal/repository/sqlite"
)

func newUserFixture(t *testing.T) UserService {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	return NewUserService(repo, NewPasswordManager(bcrypt.MinCost))
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Username)
	require.Equal(t, "A B", user.RealName)
	require.Empty(t, user.PasswordHash)

	got, err := svc.Authenticate(ctx, "a@b.com", "longpass1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got.Username)
}

func TestUserService_RegisterRejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass2")
	require.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.Register(ctx, "a@b.com", "A B", "short7!", "short7!")
	require.ErrorIs(t, err, ErrWeakPassword)

	// Neither failed attempt created a record.
	_, err = svc.Authenticate(ctx, "a@b.com", "longpass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	svc := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass1")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserService_ConcurrentDuplicateRegistration(t *testing.T) {
	t.Parallel()

	svc := newUserFixture(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "race@b.com", "R C", "longpass1", "longpass1")
		}(i)
	}
	wg.Wait()

	// Exactly one registration wins; the store's uniqueness constraint
	// turns every loser into the same already-exists failure.
	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, ErrUserAlreadyExists)
		}
	}
	require.Equal(t, 1, won)
}

func TestUserService_AuthenticateConflatesFailures(t *testing.T) {
	t.Parallel()

	svc := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass1")
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "a@b.com", "wrongpass")
	_, unknownUser := svc.Authenticate(ctx, "nobody@b.com", "longpass1")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestUserService_Delete(t *testing.T) {
	t.Parallel()

	svc := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "a@b.com"))

	_, err = svc.Authenticate(ctx, "a@b.com", "longpass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// The username is free again after deletion.
	_, err = svc.Register(ctx, "a@b.com", "A B", "longpass1", "longpass1")
	require.NoError(t, err)
}
