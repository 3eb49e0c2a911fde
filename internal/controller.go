package internal

import (
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// ControllerFactory creates a controller instance for one request.
// The Context is the controller's constructor dependency.
type ControllerFactory func(c Context) any

// ActionProvider lets a controller expose actions without reflection.
type ActionProvider interface {
	Action(name string) (func() error, bool)
}

type controllerExport struct {
	factory ControllerFactory
	typ     reflect.Type // nil when unknown
}

// ControllerModule groups controller exports under one module key.
// Lookups fall back to the default export when the name is not exported.
type ControllerModule struct {
	exports map[string]controllerExport
	def     *controllerExport
}

// Export adds a named export.
func (m *ControllerModule) Export(name string, factory ControllerFactory) *ControllerModule {
	m.exports[name] = controllerExport{factory: factory}
	return m
}

// Default sets the default export.
func (m *ControllerModule) Default(factory ControllerFactory) *ControllerModule {
	m.def = &controllerExport{factory: factory}
	return m
}

func (m *ControllerModule) lookup(name string) (controllerExport, bool) {
	if exp, ok := m.exports[name]; ok {
		return exp, true
	}
	if m.def != nil {
		return *m.def, true
	}
	return controllerExport{}, false
}

// ControllerRegistry holds controller modules by key, e.g. "Admin/UserController".
type ControllerRegistry struct {
	modules map[string]*ControllerModule
	mu      sync.RWMutex
}

// NewControllerRegistry returns an empty registry.
func NewControllerRegistry() *ControllerRegistry {
	return &ControllerRegistry{modules: make(map[string]*ControllerModule)}
}

// Module returns the module for key, creating it if needed.
func (r *ControllerRegistry) Module(key string) *ControllerModule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moduleLocked(key)
}

func (r *ControllerRegistry) moduleLocked(key string) *ControllerModule {
	m, ok := r.modules[key]
	if !ok {
		m = &ControllerModule{exports: make(map[string]controllerExport)}
		r.modules[key] = m
	}
	return m
}

// Register exports factory under the locator's leaf name in the locator's module.
//
//	registry.Register("Admin/UserController", func(c rex.Context) any {
//	    return &admin.UserController{Ctx: c, Store: store}
//	})
func (r *ControllerRegistry) Register(locator string, factory ControllerFactory) {
	r.register(locator, controllerExport{factory: factory})
}

func (r *ControllerRegistry) register(locator string, exp controllerExport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moduleLocked(locator).exports[leafName(locator)] = exp
}

// RegisterController registers a typed factory. Knowing the type lets the
// dispatcher reject routes naming a missing action before serving.
func RegisterController[T any](r *ControllerRegistry, locator string, factory func(Context) T) {
	r.register(locator, controllerExport{
		factory: func(c Context) any { return factory(c) },
		typ:     reflect.TypeFor[T](),
	})
}

// Keys returns the registered module keys, sorted.
func (r *ControllerRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.modules))
}

func (r *ControllerRegistry) lookup(key string) (*ControllerModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[key]
	return m, ok
}

func leafName(locator string) string {
	if i := strings.LastIndexByte(locator, '/'); i >= 0 {
		return locator[i+1:]
	}
	return locator
}

var (
	errorType          = reflect.TypeFor[error]()
	actionProviderType = reflect.TypeFor[ActionProvider]()

	// reflect.Type -> map[method name]method index
	actionCache sync.Map
)

// actionMethods lists the methods of t usable as actions: func() error.
func actionMethods(t reflect.Type) map[string]int {
	if cached, ok := actionCache.Load(t); ok {
		return cached.(map[string]int)
	}
	methods := make(map[string]int)
	for i := range t.NumMethod() {
		mt := t.Method(i).Type
		// Method types on a concrete type include the receiver.
		in := 1
		if t.Kind() == reflect.Interface {
			in = 0
		}
		if mt.NumIn() == in && mt.NumOut() == 1 && mt.Out(0) == errorType {
			methods[t.Method(i).Name] = i
		}
	}
	actual, _ := actionCache.LoadOrStore(t, methods)
	return actual.(map[string]int)
}

// staticHasAction reports whether a controller type can serve action.
// Types that provide actions dynamically are assumed to.
func staticHasAction(t reflect.Type, action string) bool {
	if t == nil || t.Implements(actionProviderType) {
		return true
	}
	_, ok := actionMethods(t)[methodName(action)]
	return ok
}

// lookupAction finds the callable for action on a controller instance.
func lookupAction(instance any, action string) (func() error, bool) {
	if ap, ok := instance.(ActionProvider); ok {
		return ap.Action(action)
	}
	v := reflect.ValueOf(instance)
	if !v.IsValid() {
		return nil, false
	}
	idx, ok := actionMethods(v.Type())[methodName(action)]
	if !ok {
		return nil, false
	}
	fn, ok := v.Method(idx).Interface().(func() error)
	return fn, ok
}

// methodName maps an action name to a Go method name:
// "index" -> "Index", "send_reset_link" -> "SendResetLink".
func methodName(action string) string {
	var b strings.Builder
	upper := true
	for _, r := range action {
		if r == '_' || r == '-' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
