package internal

import (
	"slices"
	"strings"
)

// HTTP methods accepted in route definitions.
// MethodAny matches every method.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
	MethodAny    = "ANY"
)

// RouteDefinition is one declared route.
//
// Handler is a HandlerFunc, a func(Context) error, an http.Handler, or a
// "[Namespace/]Name@method" controller reference. Middleware holds names
// resolved through the MiddlewareRegistry at dispatch time.
type RouteDefinition struct {
	Handler    any      `json:"-" yaml:"-"`
	Method     string   `json:"method" yaml:"method"`
	Path       string   `json:"path" yaml:"path"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Middleware []string `json:"middleware,omitempty" yaml:"middleware,omitempty"`
}

// HandlerName describes the handler for listings: the controller reference
// for string handlers, "func" otherwise.
func (d RouteDefinition) HandlerName() string {
	if s, ok := d.Handler.(string); ok {
		return s
	}
	return "func"
}

func (d RouteDefinition) clone() RouteDefinition {
	d.Middleware = slices.Clone(d.Middleware)
	return d
}

// normalizeMethod upper-cases m and maps "all" to ANY.
func normalizeMethod(m string) string {
	m = strings.ToUpper(strings.TrimSpace(m))
	if m == "ALL" {
		return MethodAny
	}
	return m
}

// joinPath applies a group prefix to a route path.
func joinPath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}

// chiPattern converts ":param" segments to chi's "{param}".
func chiPattern(path string) string {
	if !strings.Contains(path, ":") {
		return path
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if len(seg) > 1 && seg[0] == ':' {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
