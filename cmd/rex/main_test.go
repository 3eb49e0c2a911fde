package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/pkg/config"
)

const routesYAML = `routes:
  - get: /health/db
    handler: HealthController@db
    name: health.db
  - group:
      prefix: /api
      middleware: [auth]
      routes:
        - apiResource: users
          controller: UserController
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRoutes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRoutesCommand(t *testing.T) {
	t.Parallel()

	t.Run("prints the expanded table", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "routes", "--file", writeRoutes(t, routesYAML))
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Contains(t, lines[0], "METHOD")
		assert.Contains(t, out, "HealthController@db")
		assert.Contains(t, out, "health.db")
		assert.Contains(t, out, "/api/users/:id")
		assert.Contains(t, out, "UserController@destroy")
		assert.Contains(t, out, "auth")
		assert.Contains(t, out, "6 route(s)")
	})

	t.Run("filters by method", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "routes", "--file", writeRoutes(t, routesYAML), "--method", "get")
		require.NoError(t, err)
		assert.Contains(t, out, "3 route(s)")
		assert.NotContains(t, out, "UserController@store")
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, "routes", "--file", writeRoutes(t, ""))
		require.NoError(t, err)
		assert.Equal(t, "No routes.\n", out)
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "routes", "--file", writeRoutes(t, "routes:\n  - get: /x\n"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, "routes", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestMaskSecrets(t *testing.T) {
	t.Parallel()

	var cfg config.Config
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"DB_PASSWORD":       "hunter2",
		"DATABASE_CONN_URL": "postgres://app:s3cret@db:5432/app",
		"REDIS_URL":         "redis://:redispass@cache:6379/0",
		"SENTRY_DSN":        "https://key@o1.ingest.sentry.io/1",
	}))

	got := maskSecrets(cfg)
	assert.Equal(t, masked, got.Database.Password)
	assert.Equal(t, "postgres://app:xxxxx@db:5432/app", got.Database.ConnectionString)
	assert.Equal(t, "redis://:xxxxx@cache:6379/0", got.Redis.URL)
	assert.Equal(t, masked, got.Sentry.DSN)

	// Values without secrets pass through.
	assert.Equal(t, "localhost", got.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "config", "--env-file", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Contains(t, out, "app:")
	assert.Contains(t, out, "maxbodysize: 10MB")
	assert.Contains(t, out, "window: 15m0s")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}
