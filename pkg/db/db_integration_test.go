//go:build integration

package db_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/pkg/db"
)

func TestPostgres_Integration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.Config{ConnectionString: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Shutdown(pool)(ctx) })

	require.NoError(t, db.Healthcheck(pool)(ctx))

	m := db.NewMigrator(pool, os.DirFS("testdata"),
		db.WithMigrationsDir("migrations"),
		db.WithMigrationsTable("rex_test_migrations"),
	)
	require.NoError(t, m.Up(ctx))
	t.Cleanup(func() { _ = m.Down(ctx) })

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 1)
	assert.True(t, status[0].Applied)

	presence := db.Presence(pool)

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTx(ctx, pool, func(ctx context.Context) error {
			_, err := db.Conn(ctx, pool).Exec(ctx, "INSERT INTO rex_test_widgets (name) VALUES ('rolled')")
			require.NoError(t, err)

			found, err := presence.Exists(ctx, "rex_test_widgets", "name", "rolled")
			require.NoError(t, err)
			assert.True(t, found)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := presence.Exists(ctx, "rex_test_widgets", "name", "rolled")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("nested savepoint", func(t *testing.T) {
		err := db.WithTx(ctx, pool, func(ctx context.Context) error {
			_, err := db.Conn(ctx, pool).Exec(ctx, "INSERT INTO rex_test_widgets (name) VALUES ('outer')")
			require.NoError(t, err)

			inner := db.WithTx(ctx, pool, func(ctx context.Context) error {
				_, err := db.Conn(ctx, pool).Exec(ctx, "INSERT INTO rex_test_widgets (name) VALUES ('inner')")
				require.NoError(t, err)
				return errors.New("inner failed")
			})
			assert.Error(t, inner)
			return nil
		})
		require.NoError(t, err)

		found, err := presence.Exists(ctx, "rex_test_widgets", "name", "outer")
		require.NoError(t, err)
		assert.True(t, found)

		found, err = presence.Exists(ctx, "rex_test_widgets", "name", "inner")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
