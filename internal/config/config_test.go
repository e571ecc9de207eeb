package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Database.Engine)
	require.Equal(t, "data/kegwatch.db", cfg.Database.Path)
	require.Equal(t, 90, cfg.Auth.SessionDays)
	require.Equal(t, 0, cfg.Auth.BcryptCost)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KEGWATCH_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("KEGWATCH_DATABASE_ENGINE", "mongo")
	t.Setenv("KEGWATCH_DATABASE_NAME", "kegdb")
	t.Setenv("KEGWATCH_AUTH_SESSIONDAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, "mongo", cfg.Database.Engine)
	require.Equal(t, "kegdb", cfg.Database.Name)
	require.Equal(t, 7, cfg.Auth.SessionDays)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("KEGWATCH_DATABASE_ENGINE", "oracle")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("KEGWATCH_DATABASE_ENGINE", "sqlite")
	t.Setenv("KEGWATCH_AUTH_SESSIONDAYS", "0")
	_, err = Load()
	require.Error(t, err)
}
