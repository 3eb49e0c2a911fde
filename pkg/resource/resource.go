package resource

import (
	"encoding/json"
	"maps"
)

// Resource shapes one entity into a response mapping.
// Transform must be deterministic and must not mutate the entity.
type Resource interface {
	Transform() map[string]any
}

// Func is a Resource built from an entity and a transform function.
type Func[E any] struct {
	entity E
	fn     func(E) map[string]any
}

// New wraps entity. A nil fn exposes the entity's JSON attributes.
func New[E any](entity E, fn func(E) map[string]any) Func[E] {
	return Func[E]{entity: entity, fn: fn}
}

// Entity returns the wrapped entity.
func (f Func[E]) Entity() E { return f.entity }

// Transform returns the entity's mapping with Missing values dropped and
// nested resources resolved, so it equals ToArray.
func (f Func[E]) Transform() map[string]any {
	if f.fn == nil {
		return normalizeMap(Attributes(f.entity))
	}
	return normalizeMap(f.fn(f.entity))
}

// MarshalJSON encodes the transformed mapping, so a resource can be passed
// straight to a response helper.
func (f Func[E]) MarshalJSON() ([]byte, error) {
	return ToJSON(f)
}

// ToArray returns the transformed mapping with Missing values dropped and
// nested resources resolved. Normalizing is idempotent, so for resources
// built with New the result equals Transform.
func ToArray(r Resource) map[string]any {
	return normalizeMap(r.Transform())
}

// ToJSON encodes ToArray(r).
func ToJSON(r Resource) ([]byte, error) {
	return json.Marshal(ToArray(r))
}

// Collection wraps each entity, preserving order.
func Collection[E any](entities []E, wrap func(E) Resource) []Resource {
	out := make([]Resource, 0, len(entities))
	for _, e := range entities {
		out = append(out, wrap(e))
	}
	return out
}

// TransformCollection wraps and transforms each entity, preserving order.
func TransformCollection[E any](entities []E, wrap func(E) Resource) []map[string]any {
	out := make([]map[string]any, 0, len(entities))
	for _, e := range entities {
		out = append(out, ToArray(wrap(e)))
	}
	return out
}

// Hide returns the resource mapping without keys.
func Hide(r Resource, keys ...string) map[string]any {
	m := ToArray(r)
	for _, k := range keys {
		delete(m, k)
	}
	return m
}

// Only returns the subset of the resource mapping named by keys.
// Keys absent from the mapping are ignored.
func Only(r Resource, keys ...string) map[string]any {
	m := ToArray(r)
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Append returns the resource mapping merged with extra. Extra wins on conflict.
func Append(r Resource, extra map[string]any) map[string]any {
	m := ToArray(r)
	maps.Copy(m, normalizeMap(extra))
	return m
}
