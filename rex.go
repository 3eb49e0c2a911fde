package rex

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/rex/internal"
	"github.com/dmitrymomot/rex/pkg/health"
	"github.com/dmitrymomot/rex/pkg/validator"
)

// Type aliases - public API
type (
	// App owns the route table, the registries and the chi router.
	// It is immutable after New.
	App = internal.App

	// Router declares routes. Declarations only record definitions; the
	// App dispatches them once every declaration has run.
	Router = internal.Router

	// Route is a handle on a declared route, used to name it.
	Route = internal.Route

	// RouteDefinition is one entry of the route table.
	RouteDefinition = internal.RouteDefinition

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures the health endpoints.
	HealthOption = internal.HealthOption

	// ResponseWriter wraps http.ResponseWriter with status tracking and hooks.
	ResponseWriter = internal.ResponseWriter

	// Envelope is the {success, message, data, errors} response body.
	Envelope = internal.Envelope

	ControllerFactory  = internal.ControllerFactory
	ControllerRegistry = internal.ControllerRegistry
	ActionProvider     = internal.ActionProvider
	MiddlewareRegistry = internal.MiddlewareRegistry
	ModuleStrategy     = internal.ModuleStrategy
	HandlerRef         = internal.HandlerRef
	DispatchReport     = internal.DispatchReport
	RouteFailure       = internal.RouteFailure

	// FormRequest declares validation rules for a request type.
	FormRequest       = internal.FormRequest
	MessageProvider   = internal.MessageProvider
	AttributeProvider = internal.AttributeProvider
	ValidateOption    = internal.ValidateOption

	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption
	ResolutionError = internal.ResolutionError
	PanicError      = internal.PanicError

	// Scalar is the set of types Param and Query convert to.
	Scalar = internal.Scalar
)

// HTTP methods accepted in route definitions.
const (
	MethodGet    = internal.MethodGet
	MethodPost   = internal.MethodPost
	MethodPut    = internal.MethodPut
	MethodPatch  = internal.MethodPatch
	MethodDelete = internal.MethodDelete
	MethodAny    = internal.MethodAny
)

// Errors
var (
	ErrInvalidHandler     = internal.ErrInvalidHandler
	ErrControllerNotFound = internal.ErrControllerNotFound
	ErrClassNotFound      = internal.ErrClassNotFound
	ErrMethodNotFound     = internal.ErrMethodNotFound
	ErrRouteNotFound      = internal.ErrRouteNotFound
	ErrMissingRouteParam  = internal.ErrMissingRouteParam
	ErrUnsupportedMethod  = internal.ErrUnsupportedMethod
	ErrRouteConflict      = internal.ErrRouteConflict
	ErrInvalidRoutesFile  = internal.ErrInvalidRoutesFile
	ErrValidatorNotLoaded = internal.ErrValidatorNotLoaded
)

// Constructors

// New creates an application from opts. Routes are dispatched here:
// a route that fails to resolve is logged and skipped, never fatal.
//
// Example:
//
//	app := rex.New(
//	    rex.WithLogger(log),
//	    rex.WithController("UserController", users.NewController(store)),
//	    rex.WithRoutes(func(r *rex.Router) {
//	        r.APIResource("users", "UserController")
//	    }),
//	)
//
//	err := app.Run(":3000", rex.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRouter returns an empty route table, for tools that only need declarations.
func NewRouter() *Router {
	return internal.NewRouter()
}

// NewControllerRegistry returns an empty controller registry.
func NewControllerRegistry() *ControllerRegistry {
	return internal.NewControllerRegistry()
}

// NewMiddlewareRegistry returns an empty middleware registry.
func NewMiddlewareRegistry() *MiddlewareRegistry {
	return internal.NewMiddlewareRegistry()
}

// DefaultMiddlewares returns the process-wide middleware registry.
func DefaultMiddlewares() *MiddlewareRegistry {
	return internal.DefaultMiddlewares()
}

// RegisterController registers a typed controller factory. Routes naming an
// action the type lacks are rejected when the app starts.
func RegisterController[T any](r *ControllerRegistry, locator string, factory func(Context) T) {
	internal.RegisterController(r, locator, factory)
}

// ParseHandlerRef parses "[Namespace/]Name@method".
func ParseHandlerRef(s string) (HandlerRef, error) {
	return internal.ParseHandlerRef(s)
}

// Module key strategies, tried in order by the resolver.

// ExactLocator uses the reference's locator as written.
func ExactLocator() ModuleStrategy {
	return internal.ExactLocator()
}

// ControllerSuffix appends "Controller" when the name lacks it.
func ControllerSuffix() ModuleStrategy {
	return internal.ControllerSuffix()
}

// BaseName drops the namespace.
func BaseName() ModuleStrategy {
	return internal.BaseName()
}

func DefaultStrategies() []ModuleStrategy {
	return internal.DefaultStrategies()
}

// LoadRoutes declares the routes of a YAML document on r.
func LoadRoutes(r *Router, src io.Reader) error {
	return internal.LoadRoutes(r, src)
}

// LoadRoutesFile declares the routes of a YAML file in fsys on r.
func LoadRoutesFile(r *Router, fsys fs.FS, path string) error {
	return internal.LoadRoutesFile(r, fsys, path)
}

// App options

// WithRoutes declares routes. Declarations from all options run in order.
func WithRoutes(fn func(r *Router)) Option {
	return internal.WithRoutes(fn)
}

// WithHandlers registers handlers that declare their own routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithRoutesFile declares the routes of a YAML route file. New panics when
// the file is missing or malformed.
func WithRoutesFile(fsys fs.FS, path string) Option {
	return internal.WithRoutesFile(fsys, path)
}

// WithMiddleware adds global middleware, run for every request in order.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithNamedMiddleware registers middleware that routes reference by name.
func WithNamedMiddleware(name string, mw Middleware) Option {
	return internal.WithNamedMiddleware(name, mw)
}

// WithMiddlewareRegistry replaces the process-wide middleware registry.
func WithMiddlewareRegistry(r *MiddlewareRegistry) Option {
	return internal.WithMiddlewareRegistry(r)
}

// WithController registers a controller factory under locator,
// e.g. "Admin/UserController".
func WithController(locator string, factory ControllerFactory) Option {
	return internal.WithController(locator, factory)
}

// WithControllers uses r for controller lookups.
func WithControllers(r *ControllerRegistry) Option {
	return internal.WithControllers(r)
}

// WithResolverStrategies replaces the module key strategies tried in order.
func WithResolverStrategies(s ...ModuleStrategy) Option {
	return internal.WithResolverStrategies(s...)
}

// WithPresenceChecker backs the unique and exists rules.
func WithPresenceChecker(pc validator.PresenceChecker) Option {
	return internal.WithPresenceChecker(pc)
}

// WithValidator replaces the application validator.
func WithValidator(v *validator.Validator) Option {
	return internal.WithValidator(v)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithDebug exposes error details and stack traces in responses.
func WithDebug(debug bool) Option {
	return internal.WithDebug(debug)
}

// WithAppInfo sets the name and version reported by /health.
func WithAppInfo(name, version string) Option {
	return internal.WithAppInfo(name, version)
}

func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks mounts the liveness and readiness endpoints next to /health.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health options

func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

func WithReadinessTimeout(d time.Duration) HealthOption {
	return internal.WithReadinessTimeout(d)
}

// WithReadinessCheck adds a named dependency check to the readiness endpoint.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the runtime logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook runs fn after the server stops accepting requests.
// Hooks run in registration order.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// OnListen is called with the bound address once the listener is ready.
func OnListen(fn func(net.Addr)) RunOption {
	return internal.OnListen(fn)
}

// WithContext stops the server when ctx is done.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Requests

// Validate returns middleware validating the input against T's rules.
// Failures are answered with 422 and the handler is not called.
//
//	rex.WithNamedMiddleware("validate.user.create", rex.Validate[CreateUserRequest]())
func Validate[T FormRequest](opts ...ValidateOption) Middleware {
	return internal.Validate[T](opts...)
}

// Validated returns the request decoded by Validate[T].
func Validated[T FormRequest](c Context) T {
	return internal.Validated[T](c)
}

// ValidateRequest validates the input against req's rules inside a handler.
func ValidateRequest(c Context, req FormRequest) error {
	return internal.ValidateRequest(c, req)
}

// StripHTML removes HTML from string input before validation, except for
// the listed fields.
func StripHTML(except ...string) ValidateOption {
	return internal.StripHTML(except...)
}

// Helpers

// Param returns the path parameter converted to T, or T's zero value.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query returns the query parameter converted to T, or T's zero value.
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault returns the query parameter converted to T, or def.
func QueryDefault[T Scalar](c Context, name string, def T) T {
	return internal.QueryDefault(c, name, def)
}

// ContextValue returns the request value stored under key as a T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Errors

// NewHTTPError creates an error rendered with the given status.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithError attaches the underlying error. It is logged, never shown.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithErrors attaches per-field messages, rendered as "errors".
func WithErrors(errs map[string][]string) HTTPErrorOption {
	return internal.WithErrors(errs)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnprocessable(message, opts...)
}

func ErrTooManyRequests(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrTooManyRequests(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// AsHTTPError extracts an *HTTPError from err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	return internal.AsHTTPError(err)
}

// ErrorStatus maps err to the status the error handler would write.
func ErrorStatus(err error) int {
	return internal.ErrorStatus(err)
}
