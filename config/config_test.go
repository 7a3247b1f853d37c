package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hanksha/fitclass-booking/config"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		require.Equal(t, "http://localhost:3001", cfg.MockAPIURL)
		require.Equal(t, "https://dummyjson.com/user/login", cfg.AuthURL)
		require.Equal(t, 60, cfg.TokenExpiresMins)
		require.Equal(t, 2*time.Minute, cfg.QueryStaleTime)
		require.Equal(t, 3, cfg.QueryRetries)
		require.Equal(t, "file", cfg.SessionStorage)
		require.Equal(t, "auth-storage", cfg.SessionEntryName)
	})

	t.Run("env file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		content := "MOCK_API_URL=http://mock:4000/\nQUERY_STALE_TIME=30s\nSESSION_STORAGE=memory\n"
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

		t.Cleanup(func() {
			os.Unsetenv("MOCK_API_URL")
			os.Unsetenv("QUERY_STALE_TIME")
			os.Unsetenv("SESSION_STORAGE")
		})

		cfg, err := config.Load(envFile)

		require.NoError(t, err)
		require.Equal(t, "http://mock:4000", cfg.MockAPIURL)
		require.Equal(t, 30*time.Second, cfg.QueryStaleTime)
		require.Equal(t, "memory", cfg.SessionStorage)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Setenv("QUERY_RETRIES", "many")

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

		require.Error(t, err)
	})

	t.Run("postgres requires database url", func(t *testing.T) {
		t.Setenv("SESSION_STORAGE", "postgres")
		t.Setenv("DATABASE_URL", "")

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

		require.Error(t, err)
	})

	t.Run("unknown storage", func(t *testing.T) {
		t.Setenv("SESSION_STORAGE", "redis")

		_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

		require.Error(t, err)
	})
}
