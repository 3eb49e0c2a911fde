package middlewares_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/internal"
)

// serve builds an isolated app with mw as global middleware and h mounted
// on every verb at /test and /test/{id}.
func serve(mw []internal.Middleware, h internal.HandlerFunc, opts ...internal.Option) http.Handler {
	opts = append([]internal.Option{
		internal.WithMiddlewareRegistry(internal.NewMiddlewareRegistry()),
		internal.WithMiddleware(mw...),
		internal.WithRoutes(func(r *internal.Router) {
			r.Any("/test", h)
			r.Any("/test/:id", h)
		}),
	}, opts...)
	return internal.New(opts...)
}

func ok(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}

func request(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}
