package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/rex/internal"
	"github.com/dmitrymomot/rex/middlewares"
	"github.com/dmitrymomot/rex/pkg/cache"
)

// ttlStore records the TTL of every write to an in-memory cache.
type ttlStore struct {
	*cache.Memory[*rate.Limiter]
	ttls []time.Duration
	mu   sync.Mutex
}

func (s *ttlStore) Set(ctx context.Context, key string, v *rate.Limiter, ttl time.Duration) error {
	s.mu.Lock()
	s.ttls = append(s.ttls, ttl)
	s.mu.Unlock()
	return s.Memory.Set(ctx, key, v, ttl)
}

func fromIP(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":5555"
	return req
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("blocks after max per client", func(t *testing.T) {
		t.Parallel()
		h := serve([]internal.Middleware{middlewares.RateLimit(middlewares.WithRateLimit(2, time.Hour))}, ok)

		for i := range 2 {
			rec := request(t, h, fromIP("10.0.0.1"))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, strconv.Itoa(1-i), rec.Header().Get("X-RateLimit-Remaining"))
		}

		rec := request(t, h, fromIP("10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.Positive(t, retry)

		body := decode(t, rec.Body)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Too many requests from this IP, please try again later.", body["message"])

		rec = request(t, h, fromIP("10.0.0.2"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("custom key and store", func(t *testing.T) {
		t.Parallel()
		store := cache.NewMemory[*rate.Limiter](cache.WithSweepInterval(0))
		t.Cleanup(func() { _ = store.Close() })

		h := serve([]internal.Middleware{middlewares.RateLimit(
			middlewares.WithRateLimit(1, time.Hour),
			middlewares.WithRateLimitStore(store),
			middlewares.WithRateLimitKey(func(c internal.Context) string { return c.Header("X-API-Key") }),
		)}, ok)

		req := func(key string) *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			r.Header.Set("X-API-Key", key)
			return r
		}

		assert.Equal(t, http.StatusOK, request(t, h, req("a")).Code)
		assert.Equal(t, http.StatusTooManyRequests, request(t, h, req("a")).Code)
		assert.Equal(t, http.StatusOK, request(t, h, req("b")).Code)
		assert.Equal(t, 2, store.Len())
	})
	t.Run("active clients keep their bucket", func(t *testing.T) {
		t.Parallel()
		store := &ttlStore{Memory: cache.NewMemory[*rate.Limiter](cache.WithSweepInterval(0))}
		t.Cleanup(func() { _ = store.Close() })

		h := serve([]internal.Middleware{middlewares.RateLimit(
			middlewares.WithRateLimit(2, time.Minute),
			middlewares.WithRateLimitStore(store),
		)}, ok)

		for range 3 {
			request(t, h, fromIP("10.0.0.9"))
		}

		store.mu.Lock()
		defer store.mu.Unlock()
		// One write on creation, then one refresh per request.
		require.Len(t, store.ttls, 4)
		for _, ttl := range store.ttls {
			assert.Equal(t, time.Minute, ttl)
		}

		lim, err := store.Get(context.Background(), "ratelimit:10.0.0.9")
		require.NoError(t, err)
		assert.Less(t, lim.Tokens(), 1.0)
	})
}
