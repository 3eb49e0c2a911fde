package internal

import (
	"maps"
	"slices"
	"sync"
)

// MiddlewareRegistry maps middleware names used in route definitions to
// middleware functions. Group middleware is flattened into route names
// before lookup, so one registry serves every group.
type MiddlewareRegistry struct {
	entries map[string]Middleware
	mu      sync.RWMutex
}

// NewMiddlewareRegistry returns an empty registry.
func NewMiddlewareRegistry() *MiddlewareRegistry {
	return &MiddlewareRegistry{entries: make(map[string]Middleware)}
}

var defaultMiddlewares = NewMiddlewareRegistry()

// DefaultMiddlewares returns the process-wide registry used by apps that
// do not set their own.
func DefaultMiddlewares() *MiddlewareRegistry {
	return defaultMiddlewares
}

// Register adds or replaces a named middleware.
func (m *MiddlewareRegistry) Register(name string, mw Middleware) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[name] = mw
}

// Lookup returns the middleware registered under name.
func (m *MiddlewareRegistry) Lookup(name string) (Middleware, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mw, ok := m.entries[name]
	return mw, ok
}

// Names returns the registered names, sorted.
func (m *MiddlewareRegistry) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.entries))
}

// resolve returns the middleware for names in order, and the names it could not find.
func (m *MiddlewareRegistry) resolve(names []string) ([]Middleware, []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		out     = make([]Middleware, 0, len(names))
		missing []string
	)
	for _, name := range names {
		if mw, ok := m.entries[name]; ok {
			out = append(out, mw)
			continue
		}
		missing = append(missing, name)
	}
	return out, missing
}
