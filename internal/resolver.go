package internal

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// HandlerRef is a parsed "[Namespace/]Name@method" handler reference.
type HandlerRef struct {
	Namespace []string
	Name      string
	Method    string
}

// Locator returns the reference without the method, e.g. "Admin/UserController".
func (h HandlerRef) Locator() string {
	return strings.Join(append(append([]string{}, h.Namespace...), h.Name), "/")
}

func (h HandlerRef) String() string {
	return h.Locator() + "@" + h.Method
}

// ParseHandlerRef parses a controller reference.
func ParseHandlerRef(s string) (HandlerRef, error) {
	locator, method, ok := strings.Cut(s, "@")
	if !ok || locator == "" || method == "" || strings.Contains(method, "@") {
		return HandlerRef{}, &ResolutionError{Kind: ErrInvalidHandler, Locator: s}
	}
	parts := strings.Split(strings.Trim(locator, "/"), "/")
	for _, p := range parts {
		if p == "" {
			return HandlerRef{}, &ResolutionError{Kind: ErrInvalidHandler, Locator: s}
		}
	}
	return HandlerRef{
		Namespace: parts[:len(parts)-1],
		Name:      parts[len(parts)-1],
		Method:    method,
	}, nil
}

// ModuleStrategy proposes a controller module key for a reference.
// It returns false when it has nothing to propose.
type ModuleStrategy interface {
	ModuleKey(ref HandlerRef) (string, bool)
}

// ModuleStrategyFunc adapts a function to ModuleStrategy.
type ModuleStrategyFunc func(ref HandlerRef) (string, bool)

func (f ModuleStrategyFunc) ModuleKey(ref HandlerRef) (string, bool) {
	return f(ref)
}

const controllerSuffix = "Controller"

// ExactLocator looks up the reference as written: "Admin/User".
func ExactLocator() ModuleStrategy {
	return ModuleStrategyFunc(func(ref HandlerRef) (string, bool) {
		return ref.Locator(), true
	})
}

// ControllerSuffix appends "Controller" to the name when missing: "Admin/UserController".
func ControllerSuffix() ModuleStrategy {
	return ModuleStrategyFunc(func(ref HandlerRef) (string, bool) {
		if strings.HasSuffix(ref.Name, controllerSuffix) {
			return "", false
		}
		ref.Name += controllerSuffix
		return ref.Locator(), true
	})
}

// BaseName drops the namespace: "UserController".
func BaseName() ModuleStrategy {
	return ModuleStrategyFunc(func(ref HandlerRef) (string, bool) {
		if len(ref.Namespace) == 0 {
			return "", false
		}
		return ref.Name, true
	})
}

// DefaultStrategies returns the lookup order used when none is configured.
func DefaultStrategies() []ModuleStrategy {
	return []ModuleStrategy{ExactLocator(), ControllerSuffix(), BaseName()}
}

// Resolver turns route handlers into HandlerFuncs.
type Resolver struct {
	controllers *ControllerRegistry
	strategies  []ModuleStrategy
}

// NewResolver creates a resolver. Nil strategies mean DefaultStrategies.
func NewResolver(controllers *ControllerRegistry, strategies ...ModuleStrategy) *Resolver {
	if controllers == nil {
		controllers = NewControllerRegistry()
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Resolver{controllers: controllers, strategies: strategies}
}

// Resolve returns a HandlerFunc for a route handler.
// String references fail fast when no module or export matches, or when the
// controller type is known and lacks the action. Instances are created per request.
func (r *Resolver) Resolve(handler any) (HandlerFunc, error) {
	switch h := handler.(type) {
	case HandlerFunc:
		return guard(h), nil
	case func(Context) error:
		return guard(h), nil
	case string:
		return r.resolveRef(h)
	case http.Handler:
		return func(c Context) error {
			h.ServeHTTP(c.Response(), c.Request())
			return nil
		}, nil
	case nil:
		return nil, &ResolutionError{Kind: ErrInvalidHandler, Err: fmt.Errorf("nil handler")}
	default:
		return nil, &ResolutionError{Kind: ErrInvalidHandler, Err: fmt.Errorf("unsupported handler type %T", handler)}
	}
}

func (r *Resolver) resolveRef(s string) (HandlerFunc, error) {
	ref, err := ParseHandlerRef(s)
	if err != nil {
		return nil, err
	}

	key, module, ok := r.findModule(ref)
	if !ok {
		return nil, &ResolutionError{Kind: ErrControllerNotFound, Locator: ref.Locator(), Method: ref.Method}
	}

	exp, ok := module.lookup(leafName(key))
	if !ok {
		return nil, &ResolutionError{Kind: ErrClassNotFound, Locator: ref.Locator(), Method: ref.Method}
	}

	if !staticHasAction(exp.typ, ref.Method) {
		return nil, &ResolutionError{Kind: ErrMethodNotFound, Locator: ref.Locator(), Method: ref.Method}
	}

	return guard(func(c Context) error {
		instance := exp.factory(c)
		action, ok := lookupAction(instance, ref.Method)
		if !ok {
			return &ResolutionError{Kind: ErrMethodNotFound, Locator: ref.Locator(), Method: ref.Method}
		}
		return action()
	}), nil
}

// findModule returns the first module key proposed by the strategies that is registered.
func (r *Resolver) findModule(ref HandlerRef) (string, *ControllerModule, bool) {
	for _, s := range r.strategies {
		key, ok := s.ModuleKey(ref)
		if !ok {
			continue
		}
		if m, ok := r.controllers.lookup(key); ok {
			return key, m, true
		}
	}
	return "", nil, false
}

// guard converts a panic in h into a PanicError.
func guard(h HandlerFunc) HandlerFunc {
	return func(c Context) (err error) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				err = &PanicError{Value: v, Stack: stack}
			}
		}()
		return h(c)
	}
}
