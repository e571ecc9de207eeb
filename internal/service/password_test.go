package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordManager_HashAndVerify(t *testing.T) {
	t.Parallel()

	m := NewPasswordManager(bcrypt.MinCost)

	hash, err := m.Hash("longpass1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, "longpass1", hash)

	require.True(t, m.Verify("longpass1", hash))
	require.False(t, m.Verify("longpass2", hash))
	require.False(t, m.Verify("", hash))
}

func TestPasswordManager_FreshSaltPerHash(t *testing.T) {
	t.Parallel()

	m := NewPasswordManager(bcrypt.MinCost)

	h1, err := m.Hash("longpass1")
	require.NoError(t, err)
	h2, err := m.Hash("longpass1")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.True(t, m.Verify("longpass1", h1))
	require.True(t, m.Verify("longpass1", h2))
}

func TestPasswordManager_RejectsShortPassword(t *testing.T) {
	t.Parallel()

	m := NewPasswordManager(bcrypt.MinCost)

	hash, err := m.Hash("short7!")
	require.ErrorIs(t, err, ErrWeakPassword)
	require.Empty(t, hash)
}

func TestPasswordManager_VerifyGarbageHash(t *testing.T) {
	t.Parallel()

	m := NewPasswordManager(bcrypt.MinCost)
	require.False(t, m.Verify("longpass1", "not a bcrypt hash"))
}
