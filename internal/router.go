package internal

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Router is an ordered route table built by declaration calls.
// Declaring never fails; problems surface when the table is dispatched.
// A Router is not safe for concurrent declaration.
type Router struct {
	routes []RouteDefinition

	// Set on group routers, which declare straight into root's table.
	root       *Router
	prefix     string
	middleware []string
}

// NewRouter returns an empty route table.
func NewRouter() *Router {
	return &Router{}
}

// Route is a handle to a declared route, used to name it.
// Handles stay valid after the Group that produced them returns.
type Route struct {
	router *Router
	index  int
}

// Name sets the route name used for reverse lookup.
func (r Route) Name(name string) Route {
	r.router.routes[r.index].Name = name
	return r
}

// table returns the router that owns the route slice.
func (r *Router) table() *Router {
	if r.root != nil {
		return r.root
	}
	return r
}

// add applies the group prefix and middleware to def and appends it to the table.
func (r *Router) add(def RouteDefinition) Route {
	def.Path = joinPath(r.prefix, def.Path)
	def.Middleware = append(slices.Clone(r.middleware), def.Middleware...)
	t := r.table()
	t.routes = append(t.routes, def)
	return Route{router: t, index: len(t.routes) - 1}
}

// Handle declares a route for an arbitrary method.
func (r *Router) Handle(method, path string, handler any, middleware ...string) Route {
	return r.add(RouteDefinition{
		Method:     normalizeMethod(method),
		Path:       joinPath("", path),
		Handler:    handler,
		Middleware: slices.Clone(middleware),
	})
}

func (r *Router) Get(path string, handler any, middleware ...string) Route {
	return r.Handle(MethodGet, path, handler, middleware...)
}

func (r *Router) Post(path string, handler any, middleware ...string) Route {
	return r.Handle(MethodPost, path, handler, middleware...)
}

func (r *Router) Put(path string, handler any, middleware ...string) Route {
	return r.Handle(MethodPut, path, handler, middleware...)
}

func (r *Router) Patch(path string, handler any, middleware ...string) Route {
	return r.Handle(MethodPatch, path, handler, middleware...)
}

func (r *Router) Delete(path string, handler any, middleware ...string) Route {
	return r.Handle(MethodDelete, path, handler, middleware...)
}

// Any declares a route matching every method.
func (r *Router) Any(path string, handler any, middleware ...string) Route {
	return r.Handle(MethodAny, path, handler, middleware...)
}

// Group declares routes under a shared path prefix and middleware.
// Group middleware runs before the route's own middleware. Groups nest.
// Routes are appended to the parent table as they are declared, in order.
//
// Example:
//
//	r.Group("/api", func(r *rex.Router) {
//	    r.Group("/admin", func(r *rex.Router) {
//	        r.Get("/stats", "Admin/StatsController@index")
//	    }, "admin")
//	}, "auth")
func (r *Router) Group(prefix string, fn func(r *Router), middleware ...string) {
	fn(&Router{
		root:       r.table(),
		prefix:     joinPath(r.prefix, prefix),
		middleware: append(slices.Clone(r.middleware), middleware...),
	})
}

// Resource declares the full RESTful route set for a controller:
// index, create, store, show, edit, update (PUT and PATCH) and destroy.
func (r *Router) Resource(name, controller string, middleware ...string) {
	r.resource(name, controller, true, middleware)
}

// APIResource declares the RESTful route set without the create and edit form routes.
func (r *Router) APIResource(name, controller string, middleware ...string) {
	r.resource(name, controller, false, middleware)
}

func (r *Router) resource(name, controller string, forms bool, middleware []string) {
	base := joinPath("", strings.Trim(name, "/"))
	prefix := strings.ReplaceAll(strings.Trim(name, "/"), "/", ".")

	add := func(method, path, action string) {
		r.Handle(method, path, controller+"@"+action, middleware...).Name(prefix + "." + action)
	}

	add(MethodGet, base, "index")
	if forms {
		add(MethodGet, base+"/create", "create")
	}
	add(MethodPost, base, "store")
	add(MethodGet, base+"/:id", "show")
	if forms {
		add(MethodGet, base+"/:id/edit", "edit")
	}
	add(MethodPut, base+"/:id", "update")
	add(MethodPatch, base+"/:id", "update")
	add(MethodDelete, base+"/:id", "destroy")
}

// Routes returns a copy of the table in declaration order.
func (r *Router) Routes() []RouteDefinition {
	routes := r.table().routes
	out := make([]RouteDefinition, len(routes))
	for i, def := range routes {
		out[i] = def.clone()
	}
	return out
}

// RoutesByMethod returns the routes declared for method.
func (r *Router) RoutesByMethod(method string) []RouteDefinition {
	method = normalizeMethod(method)
	var out []RouteDefinition
	for _, def := range r.table().routes {
		if def.Method == method {
			out = append(out, def.clone())
		}
	}
	return out
}

// FindByName returns the first route with the given name.
func (r *Router) FindByName(name string) (RouteDefinition, bool) {
	for _, def := range r.table().routes {
		if def.Name == name {
			return def.clone(), true
		}
	}
	return RouteDefinition{}, false
}

// URL builds the path of a named route. Params fill ":key" segments;
// params not used by the path are appended as a query string.
func (r *Router) URL(name string, params map[string]any) (string, error) {
	def, ok := r.FindByName(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	used := make(map[string]bool, len(params))
	segments := strings.Split(def.Path, "/")
	for i, seg := range segments {
		if len(seg) < 2 || seg[0] != ':' {
			continue
		}
		key := seg[1:]
		v, ok := params[key]
		if !ok || v == nil {
			return "", fmt.Errorf("%w: %s requires %q", ErrMissingRouteParam, name, key)
		}
		segments[i] = url.PathEscape(fmt.Sprint(v))
		used[key] = true
	}

	path := strings.Join(segments, "/")
	query := url.Values{}
	for k, v := range params {
		if !used[k] && v != nil {
			query.Set(k, fmt.Sprint(v))
		}
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path, nil
}

// Len returns the number of declared routes.
func (r *Router) Len() int {
	return len(r.table().routes)
}

func (r *Router) clone() *Router {
	return &Router{routes: r.Routes()}
}
