package resource

type missing struct{}

// Missing marks a value that is dropped from the output along with its key.
var Missing any = missing{}

// IsMissing reports whether v is the Missing marker.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// When returns value if cond holds, otherwise the optional fallback or nil.
// The key stays in the output either way.
func When(cond bool, value any, fallback ...any) any {
	if cond {
		return value
	}
	return first(fallback)
}

// WhenCallback is When with a lazily computed value.
func WhenCallback(cond bool, fn func() any, fallback ...any) any {
	if cond {
		return fn()
	}
	return first(fallback)
}

// Omit returns value if cond holds, otherwise Missing, which removes the key.
func Omit(cond bool, value any) any {
	if cond {
		return value
	}
	return Missing
}

func first(vs []any) any {
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}
