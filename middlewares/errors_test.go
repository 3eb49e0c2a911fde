package middlewares_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rex/internal"
	"github.com/dmitrymomot/rex/middlewares"
)

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	rl := &middlewares.RateLimitError{Limit: 5, RetryAfter: time.Second}
	assert.True(t, middlewares.IsRateLimitError(fmt.Errorf("wrapped: %w", rl)))
	assert.False(t, middlewares.IsPanicError(rl))
	assert.Equal(t, http.StatusTooManyRequests, internal.ErrorStatus(rl))

	pe := &middlewares.PanicError{Value: "x"}
	assert.True(t, middlewares.IsPanicError(pe))
	assert.False(t, middlewares.IsRateLimitError(errors.New("plain")))
}
