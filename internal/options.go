package internal

import (
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/rex/pkg/validator"
)

// Option configures the application.
type Option func(*App)

// WithRoutes declares routes on the application route table.
// Declarations from all options are applied in option order.
func WithRoutes(fn func(r *Router)) Option {
	return func(a *App) {
		a.declarations = append(a.declarations, fn)
	}
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		for _, handler := range h {
			a.declarations = append(a.declarations, handler.Routes)
		}
	}
}

// WithRoutesFile declares the routes of a YAML route file.
// New panics if the file cannot be read or parsed.
//
//	//go:embed routes.yaml
//	var routesFS embed.FS
//
//	rex.New(rex.WithRoutesFile(routesFS, "routes.yaml"))
func WithRoutesFile(fsys fs.FS, path string) Option {
	return func(a *App) {
		a.declarations = append(a.declarations, func(r *Router) {
			if err := LoadRoutesFile(r, fsys, path); err != nil {
				panic(err)
			}
		})
	}
}

// WithMiddleware adds global middleware, run for every request in the order given.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithNamedMiddleware registers middleware that routes reference by name.
func WithNamedMiddleware(name string, mw Middleware) Option {
	return func(a *App) {
		a.named = append(a.named, namedMiddleware{name: name, mw: mw})
	}
}

// WithMiddlewareRegistry replaces the process-wide middleware registry.
func WithMiddlewareRegistry(r *MiddlewareRegistry) Option {
	return func(a *App) {
		a.middlewareRegistry = r
	}
}

// WithController registers a controller factory under locator, e.g. "Admin/UserController".
func WithController(locator string, factory ControllerFactory) Option {
	return func(a *App) {
		a.controllerEntries = append(a.controllerEntries, controllerEntry{locator: locator, factory: factory})
	}
}

// WithControllers uses a prepared controller registry.
func WithControllers(r *ControllerRegistry) Option {
	return func(a *App) {
		a.controllers = r
	}
}

// WithResolverStrategies replaces the controller lookup order.
func WithResolverStrategies(s ...ModuleStrategy) Option {
	return func(a *App) {
		a.strategies = s
	}
}

// WithPresenceChecker enables the unique and exists rules.
// Ignored when WithValidator is used.
func WithPresenceChecker(pc validator.PresenceChecker) Option {
	return func(a *App) {
		a.presence = pc
	}
}

// WithValidator sets the validator used by request validation.
func WithValidator(v *validator.Validator) Option {
	return func(a *App) {
		a.validator = v
	}
}

// WithLogger sets the application logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithDebug exposes error details and stack traces in error responses.
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.debug = debug
	}
}

// WithAppInfo sets the name and version reported by the health endpoint.
func WithAppInfo(name, version string) Option {
	return func(a *App) {
		if name != "" {
			a.name = name
		}
		a.version = version
	}
}

// WithErrorHandler replaces the default error envelope renderer.
//
//	rex.WithErrorHandler(func(c rex.Context, err error) error {
//	    return c.Fail(rex.ErrorStatus(err), err.Error(), nil)
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler replaces the default 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler replaces the default 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks configures the health endpoints.
//
//	rex.WithHealthChecks(
//	    rex.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    rex.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		for _, opt := range opts {
			opt(a.healthConfig)
		}
	}
}
