package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/rex/internal"
)

type LoggerConfig struct {
	SkipPaths []string
	DebugOnly bool
	Debug     bool
}

type LoggerOption func(*LoggerConfig)

// WithLogDebugOnly logs requests only when debug is true, matching APP_DEBUG.
func WithLogDebugOnly(debug bool) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.DebugOnly = true
		cfg.Debug = debug
	}
}

// WithLogSkipPaths disables logging for exact paths, e.g. probes.
func WithLogSkipPaths(paths ...string) LoggerOption {
	return func(cfg *LoggerConfig) {
		cfg.SkipPaths = append(cfg.SkipPaths, paths...)
	}
}

// Logger logs one record per request after the response is written.
// 5xx responses are logged at error level, 4xx at warn, the rest at info.
func Logger(opts ...LoggerOption) internal.Middleware {
	cfg := &LoggerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		if cfg.DebugOnly && !cfg.Debug {
			return next
		}
		return func(c internal.Context) error {
			if _, ok := skip[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = internal.ErrorStatus(err)
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("size", rw.Size()),
				slog.String("remote_addr", c.Request().RemoteAddr),
			}
			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
