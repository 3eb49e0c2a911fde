package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"github.com/go-chi/chi/v5"
)

// RouteFailure records a route that could not be registered.
type RouteFailure struct {
	Route RouteDefinition
	Err   error
}

// DispatchReport summarises one Dispatch run.
type DispatchReport struct {
	Failures   []RouteFailure
	Registered int
	Failed     int
}

// Dispatcher binds a route table onto a chi router.
type Dispatcher struct {
	resolver    *Resolver
	middlewares *MiddlewareRegistry
	adapt       func(HandlerFunc) http.HandlerFunc
	logger      *slog.Logger
	// reserved are GET paths mounted by the app before its routes.
	reserved []string
}

// anyMethods are the methods chi mounts for Handle.
var anyMethods = []string{
	http.MethodConnect, http.MethodDelete, http.MethodGet, http.MethodHead,
	http.MethodOptions, http.MethodPatch, http.MethodPost, http.MethodPut, http.MethodTrace,
}

// paramName matches a chi path parameter and captures its optional regexp.
var paramName = regexp.MustCompile(`\{[^}:]*(:[^}]*)?\}`)

// claims tracks which method and pattern pairs are already served.
// Parameter names are ignored: chi stores /{id} and /{uid} on one node.
type claims map[string]struct{}

func (c claims) key(method, pattern string) string {
	return method + " " + paramName.ReplaceAllString(pattern, "{$1}")
}

func (c claims) taken(method, pattern string) bool {
	_, ok := c[c.key(method, pattern)]
	return ok
}

func (c claims) claim(method, pattern string) {
	c[c.key(method, pattern)] = struct{}{}
}

// Dispatch registers routes in order. A route that fails (unknown method,
// unresolvable handler, rejected pattern) is skipped and reported; the rest
// are still registered. Unknown middleware names are dropped with a warning.
//
// The first route registered for a method and path wins. A later route for
// the same pair is reported with ErrRouteConflict. An ANY route only takes
// the methods still free on its path.
func (d *Dispatcher) Dispatch(router chi.Router, routes []RouteDefinition) DispatchReport {
	var report DispatchReport
	taken := claims{}
	for _, path := range d.reserved {
		taken.claim(MethodGet, chiPattern(path))
	}
	for _, def := range routes {
		if err := d.register(router, def, taken); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, RouteFailure{Route: def, Err: err})
			d.logger.Error("route registration failed",
				slog.String("method", def.Method),
				slog.String("path", def.Path),
				slog.String("handler", def.HandlerName()),
				slog.Any("error", err),
			)
			continue
		}
		report.Registered++
	}
	return report
}

func (d *Dispatcher) register(router chi.Router, def RouteDefinition, taken claims) (err error) {
	pattern := chiPattern(def.Path)
	methods := []string{def.Method}
	switch def.Method {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		if taken.taken(def.Method, pattern) {
			return fmt.Errorf("%w: %s %s", ErrRouteConflict, def.Method, def.Path)
		}
	case MethodAny:
		methods = slices.DeleteFunc(slices.Clone(anyMethods), func(m string) bool {
			return taken.taken(m, pattern)
		})
		if len(methods) == 0 {
			return fmt.Errorf("%w: %s %s", ErrRouteConflict, def.Method, def.Path)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, def.Method)
	}

	mws, missing := d.middlewares.resolve(def.Middleware)
	for _, name := range missing {
		d.logger.Warn("middleware not found, skipping",
			slog.String("middleware", name),
			slog.String("method", def.Method),
			slog.String("path", def.Path),
		)
	}

	h, err := d.resolver.Resolve(def.Handler)
	if err != nil {
		return err
	}

	// Route middleware in declaration order: the first name runs outermost.
	slices.Reverse(mws)
	for _, mw := range mws {
		h = mw(h)
	}
	handler := d.adapt(guard(h))

	// chi panics on malformed patterns.
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("rex: register %s %s: %v", def.Method, def.Path, v)
		}
	}()

	if def.Method == MethodAny && len(methods) == len(anyMethods) {
		router.Handle(pattern, handler)
	} else {
		for _, m := range methods {
			router.Method(m, pattern, handler)
		}
	}
	for _, m := range methods {
		taken.claim(m, pattern)
	}
	return nil
}
