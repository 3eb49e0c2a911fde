package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/rex/pkg/logger"
	"github.com/dmitrymomot/rex/pkg/validator"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

type namedMiddleware struct {
	mw   Middleware
	name string
}

type controllerEntry struct {
	factory ControllerFactory
	locator string
}

// App owns the route table, the registries and the chi router that serves them.
// The route table is declared and dispatched once in New; the App is immutable afterwards.
type App struct {
	router                  *chi.Mux
	routes                  *Router
	middlewareRegistry      *MiddlewareRegistry
	controllers             *ControllerRegistry
	validator               *validator.Validator
	presence                validator.PresenceChecker
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	name                    string
	version                 string
	middlewares             []Middleware
	declarations            []func(*Router)
	named                   []namedMiddleware
	controllerEntries       []controllerEntry
	strategies              []ModuleStrategy
	report                  DispatchReport
	debug                   bool
}

// New creates an application from options.
//
// Example:
//
//	app := rex.New(
//	    rex.WithLogger(log),
//	    rex.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    rex.WithController("UserController", func(c rex.Context) any {
//	        return &UserController{Ctx: c, Users: store}
//	    }),
//	    rex.WithRoutes(func(r *rex.Router) {
//	        r.APIResource("users", "UserController")
//	    }),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       logger.NewNope(),
		name:         frameworkName,
		healthConfig: defaultHealthConfig(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.middlewareRegistry == nil {
		a.middlewareRegistry = DefaultMiddlewares()
	}
	for _, nm := range a.named {
		a.middlewareRegistry.Register(nm.name, nm.mw)
	}

	if a.controllers == nil {
		a.controllers = NewControllerRegistry()
	}
	for _, ce := range a.controllerEntries {
		a.controllers.Register(ce.locator, ce.factory)
	}

	if a.validator == nil {
		var vopts []validator.Option
		if a.presence != nil {
			vopts = append(vopts, validator.WithPresenceChecker(a.presence))
		}
		a.validator = validator.New(vopts...)
	}

	if a.errorHandler == nil {
		a.errorHandler = a.defaultErrorHandler
	}
	if a.notFoundHandler == nil {
		a.notFoundHandler = a.defaultNotFoundHandler
	}
	if a.methodNotAllowedHandler == nil {
		a.methodNotAllowedHandler = a.defaultMethodNotAllowedHandler
	}

	table := NewRouter()
	for _, declare := range a.declarations {
		declare(table)
	}
	// Serving reads only this snapshot.
	a.routes = table.clone()

	a.setupRoutes()
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Router returns the underlying chi router.
func (a *App) Router() chi.Router {
	return a.router
}

// Routes returns a copy of the dispatched route table.
func (a *App) Routes() []RouteDefinition {
	return a.routes.Routes()
}

// URL builds the path of a named route.
func (a *App) URL(name string, params map[string]any) (string, error) {
	return a.routes.URL(name, params)
}

// DispatchReport returns the outcome of binding the route table.
func (a *App) DispatchReport() DispatchReport {
	return a.report
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Validator returns the application validator.
func (a *App) Validator() *validator.Validator {
	return a.validator
}

// Run starts the HTTP server and blocks until shutdown.
//
//	err := app.Run(cfg.Addr(), rex.Logger(log), rex.ShutdownHook(db.Shutdown(pool)))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}
	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		onListen:        cfg.onListen,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	a.router.NotFound(a.adaptHandler(a.notFoundHandler))
	a.router.MethodNotAllowed(a.adaptHandler(a.methodNotAllowedHandler))

	// chi requires middleware before routes.
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	a.mountHealth()

	d := &Dispatcher{
		resolver:    NewResolver(a.controllers, a.strategies...),
		middlewares: a.middlewareRegistry,
		adapt:       a.adaptHandler,
		logger:      a.logger,
		reserved: []string{
			a.healthConfig.infoPath,
			a.healthConfig.livenessPath,
			a.healthConfig.readinessPath,
		},
	}
	a.report = d.Dispatch(a.router, a.routes.Routes())

	a.logger.Info("routes dispatched",
		slog.String("app", a.name),
		slog.Int("registered", a.report.Registered),
		slog.Int("failed", a.report.Failed),
	)
}

// adaptHandler converts a HandlerFunc to an http.HandlerFunc using the app's error handler.
func (a *App) adaptHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a Middleware to chi middleware.
// The request seen by next carries any values the middleware Set.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			c := newContext(w, r, a)
			if err := guard(mw(nextFunc))(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response was written", slog.Any("error", err))
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", slog.Any("error", herr), slog.Any("cause", err))
		if !c.Written() {
			http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
