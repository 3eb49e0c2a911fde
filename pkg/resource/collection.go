package resource

import (
	"encoding/json"
	"maps"
)

// List is a serialisable collection of resources, optionally with metadata.
// Without metadata it encodes as a JSON array, with metadata as
// {"data": [...], "meta": {...}}.
type List struct {
	items []Resource
	meta  map[string]any
}

// NewCollection creates a List from resources.
func NewCollection(items []Resource) *List {
	return &List{items: items}
}

// WithMeta attaches {"count": len(items), "total": total}.
func (l *List) WithMeta(total int) *List {
	return l.Meta("count", len(l.items)).Meta("total", total)
}

// Meta sets an additional metadata key, e.g. page or per_page.
func (l *List) Meta(key string, value any) *List {
	out := &List{items: l.items, meta: maps.Clone(l.meta)}
	if out.meta == nil {
		out.meta = map[string]any{}
	}
	out.meta[key] = value
	return out
}

// Len returns the number of resources.
func (l *List) Len() int { return len(l.items) }

// ToArray transforms every resource in order.
func (l *List) ToArray() []map[string]any {
	out := make([]map[string]any, len(l.items))
	for i, r := range l.items {
		out[i] = ToArray(r)
	}
	return out
}

func (l *List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.value())
}

func (l *List) value() any {
	if l.meta == nil {
		return l.ToArray()
	}
	return map[string]any{
		"data": l.ToArray(),
		"meta": maps.Clone(l.meta),
	}
}
