//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/pkg/redis"
)

func TestConnect_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{URL: url, RetryAttempts: 1})
	require.NoError(t, err)

	require.NoError(t, redis.Healthcheck(client)(ctx))
	require.NoError(t, redis.Shutdown(client)(ctx))
	require.NoError(t, redis.Shutdown(client)(ctx))
}
