package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/internal"
)

func noop(internal.Context) error { return nil }

func TestRouter_Verbs(t *testing.T) {
	t.Parallel()

	r := internal.NewRouter()
	r.Get("/a", noop)
	r.Post("b", "PostController@store", "auth").Name("posts.store")
	r.Put("/c", noop)
	r.Patch("/d", noop)
	r.Delete("/e", noop)
	r.Any("/f", noop)
	r.Handle("all", "/g", noop)

	routes := r.Routes()
	require.Len(t, routes, 7)

	methods := make([]string, len(routes))
	for i, def := range routes {
		methods[i] = def.Method
	}
	assert.Equal(t, []string{"GET", "POST", "PUT", "PATCH", "DELETE", "ANY", "ANY"}, methods)

	assert.Equal(t, "/b", routes[1].Path)
	assert.Equal(t, []string{"auth"}, routes[1].Middleware)
	assert.Equal(t, "posts.store", routes[1].Name)
	assert.Equal(t, "PostController@store", routes[1].HandlerName())
	assert.Equal(t, "func", routes[0].HandlerName())
}

func TestRouter_Group(t *testing.T) {
	t.Parallel()

	t.Run("applies prefix and middleware once", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		r.Group("/api", func(r *internal.Router) {
			r.Get("/users", noop, "throttle")
			r.Get("/", noop)
		}, "auth")

		routes := r.Routes()
		require.Len(t, routes, 2)
		assert.Equal(t, "/api/users", routes[0].Path)
		assert.Equal(t, []string{"auth", "throttle"}, routes[0].Middleware)
		assert.Equal(t, "/api", routes[1].Path)
		assert.Equal(t, []string{"auth"}, routes[1].Middleware)
	})

	t.Run("nests", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		r.Get("/before", noop)
		r.Group("/api/", func(r *internal.Router) {
			r.Group("v1", func(r *internal.Router) {
				r.Get("/stats", "Admin/StatsController@index", "cache").Name("stats")
			}, "admin")
		}, "auth")
		r.Get("/after", noop)

		routes := r.Routes()
		require.Len(t, routes, 3)
		assert.Equal(t, "/before", routes[0].Path)
		assert.Equal(t, "/api/v1/stats", routes[1].Path)
		assert.Equal(t, []string{"auth", "admin", "cache"}, routes[1].Middleware)
		assert.Equal(t, "stats", routes[1].Name)
		assert.Equal(t, "/after", routes[2].Path)
	})

	t.Run("does not leak middleware between routes", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		r.Group("/g", func(r *internal.Router) {
			r.Get("/a", noop, "one")
			r.Get("/b", noop, "two")
		}, "group")

		routes := r.Routes()
		assert.Equal(t, []string{"group", "one"}, routes[0].Middleware)
		assert.Equal(t, []string{"group", "two"}, routes[1].Middleware)
	})

	t.Run("handles outlive the group", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		var show internal.Route
		r.Group("/api", func(r *internal.Router) {
			show = r.Get("/posts/:id", noop)
		})
		show.Name("posts.show")

		def, ok := r.FindByName("posts.show")
		require.True(t, ok)
		assert.Equal(t, "/api/posts/:id", def.Path)

		url, err := r.URL("posts.show", map[string]any{"id": 3})
		require.NoError(t, err)
		assert.Equal(t, "/api/posts/3", url)
	})
}

func TestRouter_Resource(t *testing.T) {
	t.Parallel()

	type want struct{ method, path, handler, name string }

	t.Run("full resource declares eight routes", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		r.Resource("photos", "PhotoController", "auth")

		expected := []want{
			{"GET", "/photos", "PhotoController@index", "photos.index"},
			{"GET", "/photos/create", "PhotoController@create", "photos.create"},
			{"POST", "/photos", "PhotoController@store", "photos.store"},
			{"GET", "/photos/:id", "PhotoController@show", "photos.show"},
			{"GET", "/photos/:id/edit", "PhotoController@edit", "photos.edit"},
			{"PUT", "/photos/:id", "PhotoController@update", "photos.update"},
			{"PATCH", "/photos/:id", "PhotoController@update", "photos.update"},
			{"DELETE", "/photos/:id", "PhotoController@destroy", "photos.destroy"},
		}
		routes := r.Routes()
		require.Len(t, routes, len(expected))
		for i, w := range expected {
			assert.Equal(t, w.method, routes[i].Method, "route %d", i)
			assert.Equal(t, w.path, routes[i].Path, "route %d", i)
			assert.Equal(t, w.handler, routes[i].Handler, "route %d", i)
			assert.Equal(t, w.name, routes[i].Name, "route %d", i)
			assert.Equal(t, []string{"auth"}, routes[i].Middleware, "route %d", i)
		}
	})

	t.Run("api resource declares six routes", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		r.APIResource("users", "UserController")

		routes := r.Routes()
		require.Len(t, routes, 6)
		for _, def := range routes {
			assert.NotContains(t, def.Path, "create")
			assert.NotContains(t, def.Path, "edit")
		}
		assert.Len(t, r.RoutesByMethod("get"), 2)
		assert.Len(t, r.RoutesByMethod("PUT"), 1)
		assert.Len(t, r.RoutesByMethod("PATCH"), 1)
	})

	t.Run("inside a group", func(t *testing.T) {
		t.Parallel()
		r := internal.NewRouter()
		r.Group("/admin", func(r *internal.Router) {
			r.APIResource("users", "Admin/UserController")
		})

		def, ok := r.FindByName("users.show")
		require.True(t, ok)
		assert.Equal(t, "/admin/users/:id", def.Path)
		assert.Equal(t, "Admin/UserController@show", def.Handler)
	})
}

func TestRouter_URL(t *testing.T) {
	t.Parallel()

	r := internal.NewRouter()
	r.Get("/users/:id/posts/:post", noop).Name("user.post")
	r.Get("/search", noop).Name("search")

	t.Run("fills params", func(t *testing.T) {
		t.Parallel()
		u, err := r.URL("user.post", map[string]any{"id": 42, "post": "hello world"})
		require.NoError(t, err)
		assert.Equal(t, "/users/42/posts/hello%20world", u)
	})

	t.Run("extra params become query", func(t *testing.T) {
		t.Parallel()
		u, err := r.URL("search", map[string]any{"q": "go", "page": 2})
		require.NoError(t, err)
		assert.Equal(t, "/search?page=2&q=go", u)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := r.URL("nope", nil)
		assert.ErrorIs(t, err, internal.ErrRouteNotFound)
	})

	t.Run("missing param", func(t *testing.T) {
		t.Parallel()
		_, err := r.URL("user.post", map[string]any{"id": 1})
		assert.ErrorIs(t, err, internal.ErrMissingRouteParam)
	})
}

func TestRouter_RoutesIsACopy(t *testing.T) {
	t.Parallel()

	r := internal.NewRouter()
	r.Get("/a", noop, "auth")

	routes := r.Routes()
	routes[0].Path = "/changed"
	routes[0].Middleware[0] = "changed"

	fresh := r.Routes()
	assert.Equal(t, "/a", fresh[0].Path)
	assert.Equal(t, []string{"auth"}, fresh[0].Middleware)
}
