package internal_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/internal"
)

type userID int64

func TestTypedParams(t *testing.T) {
	t.Parallel()

	type result struct {
		ID      userID  `json:"id"`
		Page    int     `json:"page"`
		Limit   int     `json:"limit"`
		Score   float64 `json:"score"`
		Active  bool    `json:"active"`
		Invalid int     `json:"invalid"`
	}

	app := newApp(internal.WithRoutes(func(r *internal.Router) {
		r.Get("/users/:id", func(c internal.Context) error {
			return c.JSON(http.StatusOK, result{
				ID:      internal.Param[userID](c, "id"),
				Page:    internal.QueryDefault(c, "page", 1),
				Limit:   internal.QueryDefault(c, "limit", 20),
				Score:   internal.Query[float64](c, "score"),
				Active:  internal.Query[bool](c, "active"),
				Invalid: internal.Query[int](c, "bad"),
			})
		})
	}))

	rec, body := do(t, app, http.MethodGet, "/users/42?limit=abc&score=1.5&active=true&bad=x", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(20), body["limit"])
	assert.Equal(t, 1.5, body["score"])
	assert.Equal(t, true, body["active"])
	assert.Equal(t, float64(0), body["invalid"])
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type tenantKey struct{}
	app := newApp(
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Set(tenantKey{}, "acme")
				return next(c)
			}
		}),
		internal.WithRoutes(func(r *internal.Router) {
			r.Get("/", func(c internal.Context) error {
				return c.Success(map[string]any{
					"tenant":  internal.ContextValue[string](c, tenantKey{}),
					"missing": internal.ContextValue[int](c, "nope"),
				}, "")
			})
		}),
	)

	_, body := do(t, app, http.MethodGet, "/", "")
	assert.Equal(t, map[string]any{"tenant": "acme", "missing": float64(0)}, body["data"])
}
