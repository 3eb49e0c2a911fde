package middlewares

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/rex/internal"
)

// SecurityHeadersConfig holds the header values. An empty value omits the header.
type SecurityHeadersConfig struct {
	ContentSecurityPolicy     string
	CrossOriginOpenerPolicy   string
	CrossOriginResourcePolicy string
	ReferrerPolicy            string
	FrameOptions              string
	PermittedCrossDomain      string
	HSTSMaxAge                time.Duration
	HSTSIncludeSubdomains     bool
	NoSniff                   bool
	DNSPrefetchOff            bool
}

type SecurityHeadersOption func(*SecurityHeadersConfig)

func WithContentSecurityPolicy(policy string) SecurityHeadersOption {
	return func(cfg *SecurityHeadersConfig) {
		cfg.ContentSecurityPolicy = policy
	}
}

func WithFrameOptions(value string) SecurityHeadersOption {
	return func(cfg *SecurityHeadersConfig) {
		cfg.FrameOptions = value
	}
}

func WithReferrerPolicy(policy string) SecurityHeadersOption {
	return func(cfg *SecurityHeadersConfig) {
		cfg.ReferrerPolicy = policy
	}
}

// WithHSTS sets Strict-Transport-Security. Zero maxAge disables it.
func WithHSTS(maxAge time.Duration, includeSubdomains bool) SecurityHeadersOption {
	return func(cfg *SecurityHeadersConfig) {
		cfg.HSTSMaxAge = maxAge
		cfg.HSTSIncludeSubdomains = includeSubdomains
	}
}

// SecurityHeaders sets the usual hardening headers on every response.
// Defaults follow helmet.
func SecurityHeaders(opts ...SecurityHeadersOption) internal.Middleware {
	cfg := &SecurityHeadersConfig{
		ContentSecurityPolicy:     "default-src 'self';base-uri 'self';frame-ancestors 'self';object-src 'none'",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		ReferrerPolicy:            "no-referrer",
		FrameOptions:              "SAMEORIGIN",
		PermittedCrossDomain:      "none",
		HSTSMaxAge:                365 * 24 * time.Hour,
		HSTSIncludeSubdomains:     true,
		NoSniff:                   true,
		DNSPrefetchOff:            true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	headers := map[string]string{
		"Content-Security-Policy":           cfg.ContentSecurityPolicy,
		"Cross-Origin-Opener-Policy":        cfg.CrossOriginOpenerPolicy,
		"Cross-Origin-Resource-Policy":      cfg.CrossOriginResourcePolicy,
		"Referrer-Policy":                   cfg.ReferrerPolicy,
		"X-Frame-Options":                   cfg.FrameOptions,
		"X-Permitted-Cross-Domain-Policies": cfg.PermittedCrossDomain,
	}
	if cfg.NoSniff {
		headers["X-Content-Type-Options"] = "nosniff"
	}
	if cfg.DNSPrefetchOff {
		headers["X-DNS-Prefetch-Control"] = "off"
	}
	if cfg.HSTSMaxAge > 0 {
		v := "max-age=" + strconv.Itoa(int(cfg.HSTSMaxAge.Seconds()))
		if cfg.HSTSIncludeSubdomains {
			v += "; includeSubDomains"
		}
		headers["Strict-Transport-Security"] = v
	}
	for k, v := range headers {
		if v == "" {
			delete(headers, k)
		}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			h := c.Response().Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			return next(c)
		}
	}
}
