package middlewares_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/internal"
	"github.com/dmitrymomot/rex/middlewares"
	"github.com/dmitrymomot/rex/pkg/logger"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes PanicError", func(t *testing.T) {
		t.Parallel()
		mw := middlewares.Recover()
		var got error
		h := mw(func(internal.Context) error { panic("boom") })

		app := serve(nil, func(c internal.Context) error {
			got = h(c)
			return got
		})
		rec := request(t, app, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		assert.Equal(t, "boom", pe.Value)
		assert.NotEmpty(t, pe.Stack)
	})

	t.Run("logs the panic", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		recovered := middlewares.Recover(middlewares.WithRecoverDisablePrintStack())(
			func(internal.Context) error { panic(errors.New("nil map")) },
		)
		app := serve(nil, recovered,
			internal.WithLogger(logger.New(logger.Config{Output: &buf})),
			internal.WithDebug(true),
		)
		rec := request(t, app, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, buf.String(), "panic recovered")
		assert.NotContains(t, buf.String(), `"stack"`)
		assert.Equal(t, "panic: nil map", decode(t, rec.Body)["message"])
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Recover()(func(internal.Context) error { panic(http.ErrAbortHandler) })
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() { _ = h(nil) })
	})

	t.Run("no panic passes through", func(t *testing.T) {
		t.Parallel()
		app := serve([]internal.Middleware{middlewares.Recover()}, ok)
		rec := request(t, app, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, "ok", rec.Body.String())
	})
}
