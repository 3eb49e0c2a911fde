package internal_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/internal"
)

type greetController struct {
	c internal.Context
}

func (g *greetController) Index() error {
	return g.c.Success(map[string]any{"hello": g.c.Param("name")}, "")
}

func (g *greetController) SendReport() error { return nil }

// Not an action: wrong signature.
func (g *greetController) Helper(int) error { return nil }

type dynamicController struct{}

func (dynamicController) Action(name string) (func() error, bool) {
	if name == "ping" {
		return func() error { return errors.New("pong") }, true
	}
	return nil, false
}

func TestParseHandlerRef(t *testing.T) {
	t.Parallel()

	ref, err := internal.ParseHandlerRef("Admin/Reports/UserController@index")
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin", "Reports"}, ref.Namespace)
	assert.Equal(t, "UserController", ref.Name)
	assert.Equal(t, "index", ref.Method)
	assert.Equal(t, "Admin/Reports/UserController", ref.Locator())

	for _, bad := range []string{"", "UserController", "@index", "UserController@", "Admin//User@x", "a@b@c"} {
		_, err := internal.ParseHandlerRef(bad)
		assert.ErrorIs(t, err, internal.ErrInvalidHandler, bad)
	}
}

func TestResolver_Strings(t *testing.T) {
	t.Parallel()

	reg := internal.NewControllerRegistry()
	internal.RegisterController(reg, "GreetController", func(c internal.Context) *greetController {
		return &greetController{c: c}
	})
	reg.Register("Admin/UserController", func(c internal.Context) any { return &greetController{c: c} })
	reg.Module("Legacy").Default(func(internal.Context) any { return dynamicController{} })

	res := internal.NewResolver(reg)

	t.Run("exact locator", func(t *testing.T) {
		t.Parallel()
		h, err := res.Resolve("GreetController@index")
		require.NoError(t, err)
		require.NotNil(t, h)
	})

	t.Run("controller suffix", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve("Greet@index")
		require.NoError(t, err)
	})

	t.Run("base name fallback", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve("Api/V1/GreetController@send_report")
		require.NoError(t, err)
	})

	t.Run("default export", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve("Legacy@ping")
		require.NoError(t, err)
	})

	t.Run("controller not found", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve("Missing/Controller@index")
		require.ErrorIs(t, err, internal.ErrControllerNotFound)

		var rerr *internal.ResolutionError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "Missing/Controller", rerr.Locator)
		assert.Contains(t, err.Error(), "Missing/Controller@index")
	})

	t.Run("export not found", func(t *testing.T) {
		t.Parallel()
		r := internal.NewControllerRegistry()
		r.Module("Admin/UserController").Export("Other", func(internal.Context) any { return nil })
		_, err := internal.NewResolver(r).Resolve("Admin/UserController@index")
		assert.ErrorIs(t, err, internal.ErrClassNotFound)
	})

	t.Run("typed controller missing method fails early", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve("GreetController@destroy")
		assert.ErrorIs(t, err, internal.ErrMethodNotFound)

		_, err = res.Resolve("GreetController@helper")
		assert.ErrorIs(t, err, internal.ErrMethodNotFound)
	})

	t.Run("unsupported handler type", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve(42)
		assert.ErrorIs(t, err, internal.ErrInvalidHandler)
		_, err = res.Resolve(nil)
		assert.ErrorIs(t, err, internal.ErrInvalidHandler)
	})

	t.Run("http handler", func(t *testing.T) {
		t.Parallel()
		_, err := res.Resolve(http.NotFoundHandler())
		require.NoError(t, err)
	})
}

func TestResolver_CustomStrategies(t *testing.T) {
	t.Parallel()

	reg := internal.NewControllerRegistry()
	reg.Register("controllers.users", func(internal.Context) any { return dynamicController{} })

	dotted := internal.ModuleStrategyFunc(func(ref internal.HandlerRef) (string, bool) {
		return "controllers." + ref.Name, true
	})

	_, err := internal.NewResolver(reg, dotted).Resolve("users@ping")
	require.NoError(t, err)

	_, err = internal.NewResolver(reg).Resolve("users@ping")
	assert.ErrorIs(t, err, internal.ErrControllerNotFound)
}
