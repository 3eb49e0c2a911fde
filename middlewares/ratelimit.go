package middlewares

import (
	"context"
	"math"
	"net"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/rex/internal"
	"github.com/dmitrymomot/rex/pkg/cache"
)

// RateLimitConfig holds the settings assembled from RateLimitOption values.
type RateLimitConfig struct {
	// Store keeps one limiter per key. Defaults to an in-memory cache.
	// Entries are refreshed on every request and expire after Window idle,
	// by which time the bucket would have refilled anyway.
	Store   cache.Cache[*rate.Limiter]
	KeyFunc func(c internal.Context) string
	Window  time.Duration
	Max     int
}

// RateLimitOption configures RateLimit.
type RateLimitOption func(*RateLimitConfig)

// WithRateLimit allows n requests per window per key, refilled evenly.
func WithRateLimit(n int, window time.Duration) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if n > 0 {
			cfg.Max = n
		}
		if window > 0 {
			cfg.Window = window
		}
	}
}

// WithRateLimitKey sets how clients are told apart. Defaults to ClientIP.
func WithRateLimitKey(fn func(c internal.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if fn != nil {
			cfg.KeyFunc = fn
		}
	}
}

// WithRateLimitStore sets where per-key limiters live. The store must keep
// the *rate.Limiter pointer itself, so remote caches do not fit.
func WithRateLimitStore(store cache.Cache[*rate.Limiter]) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if store != nil {
			cfg.Store = store
		}
	}
}

// RateLimit limits requests per client with a token bucket holding Max
// tokens and refilling Max per Window. Over the limit it returns a
// *RateLimitError, rendered as 429 with a Retry-After header.
// Defaults: 100 requests per 15 minutes.
func RateLimit(opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{
		Max:     100,
		Window:  15 * time.Minute,
		KeyFunc: ClientIP,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Store == nil {
		cfg.Store = cache.NewMemory[*rate.Limiter](
			cache.WithDefaultTTL(cfg.Window),
			cache.WithSweepInterval(cfg.Window),
		)
	}

	every := rate.Every(cfg.Window / time.Duration(cfg.Max))
	limit := strconv.Itoa(cfg.Max)

	limiter := func(ctx context.Context, key string) (*rate.Limiter, error) {
		return cache.GetOrSet(ctx, cfg.Store, key,
			func(context.Context) (*rate.Limiter, time.Duration, error) {
				return rate.NewLimiter(every, cfg.Max), cfg.Window, nil
			})
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key := "ratelimit:" + cfg.KeyFunc(c)
			lim, err := limiter(c, key)
			if err != nil {
				c.LogWarn("rate limit store failed, allowing request", "error", err)
				return next(c)
			}
			// Sliding expiry: an active client keeps its drained bucket.
			if err := cfg.Store.Set(c, key, lim, cfg.Window); err != nil {
				c.LogWarn("rate limit store refresh failed", "error", err)
			}

			now := time.Now()
			c.SetHeader("X-RateLimit-Limit", limit)

			res := lim.ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				c.SetHeader("X-RateLimit-Remaining", "0")
				c.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				return &RateLimitError{Limit: cfg.Max, RetryAfter: delay}
			}

			remaining := max(int(lim.TokensAt(now)), 0)
			c.SetHeader("X-RateLimit-Remaining", strconv.Itoa(remaining))
			return next(c)
		}
	}
}

// ClientIP returns the host part of the request's remote address.
// Put chi's RealIP middleware in front when running behind a proxy.
func ClientIP(c internal.Context) string {
	addr := c.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
