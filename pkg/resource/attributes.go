package resource

import (
	"maps"
	"reflect"
	"strings"
)

// Attributes turns v into a mapping keyed by JSON field names.
// Structs honour json tags ("-" and omitempty) and flatten untagged embedded
// structs. Maps with string keys are copied. Anything else yields an empty map.
func Attributes(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return maps.Clone(t)
	case Resource:
		return ToArray(t)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return map[string]any{}
		}
		rv = rv.Elem()
	}

	out := map[string]any{}
	switch rv.Kind() {
	case reflect.Struct:
		structAttributes(rv, out)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			iter := rv.MapRange()
			for iter.Next() {
				out[iter.Key().String()] = iter.Value().Interface()
			}
		}
	}
	return out
}

func structAttributes(rv reflect.Value, out map[string]any) {
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		if f.Anonymous && name == "" {
			for fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					break
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				structAttributes(fv, out)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}
		out[name] = fv.Interface()
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if IsMissing(v) {
			continue
		}
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case *List:
		return t.value()
	case Resource:
		return ToArray(t)
	case []Resource:
		out := make([]map[string]any, len(t))
		for i, r := range t {
			out[i] = ToArray(r)
		}
		return out
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			if !IsMissing(item) {
				out = append(out, normalize(item))
			}
		}
		return out
	default:
		return v
	}
}
