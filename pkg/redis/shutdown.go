package redis

import (
	"context"
	"errors"
	"io"

	"github.com/redis/go-redis/v9"
)

// Shutdown returns a shutdown hook that closes the client.
// A client that is already closed is not an error.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			return err
		}
		return nil
	}
}
