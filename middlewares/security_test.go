package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rex/internal"
	"github.com/dmitrymomot/rex/middlewares"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		h := serve([]internal.Middleware{middlewares.SecurityHeaders()}, ok)
		rec := request(t, h, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
		assert.Equal(t, "max-age=31536000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
		assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
	})

	t.Run("headers are set on error responses too", func(t *testing.T) {
		t.Parallel()
		h := serve([]internal.Middleware{middlewares.SecurityHeaders()}, ok)
		rec := request(t, h, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	})

	t.Run("overrides and omissions", func(t *testing.T) {
		t.Parallel()
		h := serve([]internal.Middleware{middlewares.SecurityHeaders(
			middlewares.WithFrameOptions("DENY"),
			middlewares.WithContentSecurityPolicy(""),
			middlewares.WithReferrerPolicy("strict-origin"),
			middlewares.WithHSTS(time.Hour, false),
		)}, ok)
		rec := request(t, h, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, "strict-origin", rec.Header().Get("Referrer-Policy"))
		assert.Equal(t, "max-age=3600", rec.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, rec.Header().Values("Content-Security-Policy"))
	})
}
