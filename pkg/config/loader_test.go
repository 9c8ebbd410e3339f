package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantcore/pkg/config"
)

type dbConfig struct {
	URL      string        `env:"PG_CONN_URL,required"`
	MaxConns int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	Timeout  time.Duration `env:"PG_RESET_TIMEOUT" envDefault:"2s"`
}

type appConfig struct {
	Env      string   `env:"APP_ENV" envDefault:"development"`
	Fallback []string `env:"FALLBACK_OPERATIONS" envSeparator:","`
	DB       dbConfig
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("from environment with defaults", func(t *testing.T) {
		t.Setenv("PG_CONN_URL", "postgres://app@localhost/tenantcore")
		t.Setenv("FALLBACK_OPERATIONS", "list_members,get_member")

		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles()))
		assert.Equal(t, "postgres://app@localhost/tenantcore", cfg.DB.URL)
		assert.Equal(t, int32(10), cfg.DB.MaxConns)
		assert.Equal(t, 2*time.Second, cfg.DB.Timeout)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, []string{"list_members", "get_member"}, cfg.Fallback)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Setenv("PG_CONN_URL", "")
		os.Unsetenv("PG_CONN_URL")

		var cfg appConfig
		assert.ErrorIs(t, config.Load(&cfg, config.WithEnvFiles()), config.ErrParsingConfig)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Setenv("TC_PG_CONN_URL", "postgres://prefixed")
		t.Setenv("TC_APP_ENV", "staging")

		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(), config.WithPrefix("TC_")))
		assert.Equal(t, "postgres://prefixed", cfg.DB.URL)
		assert.Equal(t, "staging", cfg.Env)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[appConfig](nil), config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		t.Setenv("PG_CONN_URL", "")
		os.Unsetenv("PG_CONN_URL")
		var cfg appConfig
		assert.Panics(t, func() { config.MustLoad(&cfg, config.WithEnvFiles()) })
	})
}

func TestLoadEnvFiles(t *testing.T) {
	t.Run("file fills unset variables only", func(t *testing.T) {
		path := writeEnv(t, "PG_CONN_URL=postgres://from-file\nAPP_ENV=production\nPG_MAX_OPEN_CONNS=25\n")
		t.Setenv("APP_ENV", "staging")
		t.Setenv("PG_CONN_URL", "")
		os.Unsetenv("PG_CONN_URL")
		t.Setenv("PG_MAX_OPEN_CONNS", "")
		os.Unsetenv("PG_MAX_OPEN_CONNS")

		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
		assert.Equal(t, "postgres://from-file", cfg.DB.URL)
		assert.Equal(t, int32(25), cfg.DB.MaxConns)
		assert.Equal(t, "staging", cfg.Env)
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		t.Setenv("PG_CONN_URL", "postgres://env")
		var cfg appConfig
		require.NoError(t, config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "absent.env"))))
		assert.Equal(t, "postgres://env", cfg.DB.URL)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Setenv("PG_CONN_URL", "postgres://env")
		path := writeEnv(t, "NOT VALID LINE WITHOUT EQUALS 'unterminated\n")
		var cfg appConfig
		assert.ErrorIs(t, config.Load(&cfg, config.WithEnvFiles(path)), config.ErrEnvFile)
	})
}
