package internal_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/internal"
)

const routesYAML = `
routes:
  - get: /status
    handler: StatusController@show
    name: status
  - method: post
    path: /login
    handler: Auth/SessionController@store
    middleware: [throttle]
  - group:
      prefix: /api
      middleware: [auth]
      routes:
        - apiResource: users
          controller: UserController
        - delete: /cache
          handler: CacheController@clear
`

func TestLoadRoutes(t *testing.T) {
	t.Parallel()

	t.Run("inside a group", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		var err error
		r.Group("/v2", func(g *internal.Router) {
			err = internal.LoadRoutes(g, strings.NewReader(routesYAML))
		}, "version")
		require.NoError(t, err)
		require.Equal(t, 9, r.Len())

		status, ok := r.FindByName("status")
		require.True(t, ok)
		assert.Equal(t, "/v2/status", status.Path)
		assert.Equal(t, []string{"version"}, status.Middleware)
	})

	t.Run("declares every entry", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		require.NoError(t, internal.LoadRoutes(r, strings.NewReader(routesYAML)))
		assert.Equal(t, 9, r.Len())

		status, ok := r.FindByName("status")
		require.True(t, ok)
		assert.Equal(t, internal.MethodGet, status.Method)
		assert.Equal(t, "StatusController@show", status.HandlerName())

		login := r.Routes()[1]
		assert.Equal(t, internal.MethodPost, login.Method)
		assert.Equal(t, []string{"throttle"}, login.Middleware)

		show, ok := r.FindByName("users.show")
		require.True(t, ok)
		assert.Equal(t, "/api/users/:id", show.Path)
		assert.Equal(t, []string{"auth"}, show.Middleware)

		last := r.Routes()[8]
		assert.Equal(t, internal.MethodDelete, last.Method)
		assert.Equal(t, "/api/cache", last.Path)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		require.NoError(t, internal.LoadRoutes(r, strings.NewReader("")))
		assert.Zero(t, r.Len())
	})

	t.Run("rejects bad entries without declaring anything", func(t *testing.T) {
		t.Parallel()
		cases := map[string]string{
			"unknown key":      "routes:\n  - get: /a\n    handler: A@b\n    verb: x\n",
			"no method":        "routes:\n  - handler: A@b\n",
			"two methods":      "routes:\n  - get: /a\n    post: /a\n    handler: A@b\n",
			"no handler":       "routes:\n  - get: /a\n",
			"resource no ctrl": "routes:\n  - resource: photos\n",
			"nested error":     "routes:\n  - get: /ok\n    handler: A@b\n  - group:\n      prefix: /x\n      routes:\n        - get: /y\n",
		}
		for name, src := range cases {
			r := internal.NewRouter()
			err := internal.LoadRoutes(r, strings.NewReader(src))
			assert.ErrorIs(t, err, internal.ErrInvalidRoutesFile, name)
			assert.Zero(t, r.Len(), name)
		}
	})
}

func TestLoadRoutesFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"routes.yaml": {Data: []byte(routesYAML)}}

	r := internal.NewRouter()
	require.NoError(t, internal.LoadRoutesFile(r, fsys, "routes.yaml"))
	assert.Equal(t, 9, r.Len())

	err := internal.LoadRoutesFile(internal.NewRouter(), fsys, "missing.yaml")
	assert.ErrorIs(t, err, internal.ErrInvalidRoutesFile)
}
