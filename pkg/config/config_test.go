package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/pkg/config"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	require.NoError(t, config.Parse(&cfg, map[string]string{}))

	assert.Equal(t, "rex", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
	assert.True(t, cfg.CORS.Credentials)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, config.ByteSize(10<<20), cfg.Upload.MaxBodySize)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.False(t, cfg.Redis.Enabled())
}

func TestParse_Overrides(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"APP_ENV":         "production",
		"PORT":            "8080",
		"CORS_ORIGIN":     "https://a.io,https://b.io",
		"UPLOAD_MAX_BODY": "512kb",
		"LOG_LEVEL":       "debug",
		"REDIS_URL":       "redis://localhost:6379/0",
	}))

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.CORS.Origins)
	assert.Equal(t, config.ByteSize(512<<10), cfg.Upload.MaxBodySize)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.True(t, cfg.Redis.Enabled())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	err := config.Parse(&cfg, map[string]string{"UPLOAD_MAX_BODY": "lots"})
	assert.ErrorIs(t, err, config.ErrParseEnv)
}

func TestByteSize_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10MB", config.ByteSize(10<<20).String())
	assert.Equal(t, "1536B", config.ByteSize(1536).String())
	assert.Equal(t, "2KB", config.ByteSize(2048).String())
}

// Not parallel: Load reads the process environment.
func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("REX_TEST_GREETING=hello\nREX_TEST_PRESET=from-file\n"), 0o600))
	t.Setenv("REX_TEST_PRESET", "from-env")
	t.Setenv("REX_TEST_GREETING", "")
	require.NoError(t, os.Unsetenv("REX_TEST_GREETING"))

	var v struct {
		Greeting string `env:"REX_TEST_GREETING"`
		Preset   string `env:"REX_TEST_PRESET"`
	}
	require.NoError(t, config.Load(&v, filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "hello", v.Greeting)
	assert.Equal(t, "from-env", v.Preset)
}
