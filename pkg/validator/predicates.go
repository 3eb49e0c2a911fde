package validator

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// formats backs the email and url predicates. *playground.Validate is safe for concurrent use.
var formats = playground.New(playground.WithRequiredStructEnabled())

// dateLayouts are tried in order by the date rule.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

var patterns sync.Map // map[string]*regexp.Regexp

func compilePattern(p any) (*regexp.Regexp, error) {
	switch v := p.(type) {
	case *regexp.Regexp:
		if v == nil {
			return nil, fmt.Errorf("%w: nil regex", ErrInvalidRule)
		}
		return v, nil
	case string:
		if re, ok := patterns.Load(v); ok {
			return re.(*regexp.Regexp), nil
		}
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		patterns.Store(v, re)
		return re, nil
	}
	return nil, fmt.Errorf("%w: regex pattern must be a string or *regexp.Regexp", ErrInvalidRule)
}

// stringOf returns the textual form of scalar values.
func stringOf(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case []byte:
		return string(s), true
	case bool:
		return strconv.FormatBool(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s), true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

// numberOf converts numeric values and numeric strings to float64.
func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && strings.TrimSpace(n) != ""
	}
	return 0, false
}

func isNumberKind(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	}
	return false
}

// sizeOf measures a value for min/max: runes for strings, elements for collections,
// the value itself for numbers.
func sizeOf(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		return float64(utf8.RuneCountInString(s)), true
	}
	if isNumberKind(v) {
		return numberOf(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len()), true
	}
	if s, ok := stringOf(v); ok {
		return float64(utf8.RuneCountInString(s)), true
	}
	return 0, false
}

func isEmail(v any) bool {
	s, ok := v.(string)
	return ok && formats.Var(s, "required,email") == nil
}

func isURL(v any) bool {
	s, ok := v.(string)
	return ok && formats.Var(s, "required,url") == nil
}

func isUUID(v any) bool {
	s, ok := stringOf(v)
	if !ok || len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func isDate(v any) bool {
	if _, ok := v.(time.Time); ok {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isBoolean(v any) bool {
	switch b := v.(type) {
	case bool:
		return true
	case string:
		switch strings.ToLower(b) {
		case "true", "false", "1", "0":
			return true
		}
		return false
	}
	if f, ok := numberOf(v); ok && isNumberKind(v) {
		return f == 0 || f == 1
	}
	return false
}

func isNumeric(v any) bool {
	_, ok := numberOf(v)
	return ok
}

func isAlpha(v any) bool {
	return allRunes(v, unicode.IsLetter)
}

func isAlphaNumeric(v any) bool {
	return allRunes(v, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
}

func allRunes(v any, fn func(rune) bool) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return false
	}
	for _, r := range s {
		if !fn(r) {
			return false
		}
	}
	return true
}

func isArray(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isObject(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	}
	return false
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// equalValues compares scalars by their textual form so that 42 and "42" match,
// and falls back to deep equality for composite values.
func equalValues(a, b any) bool {
	sa, okA := stringOf(a)
	sb, okB := stringOf(b)
	if okA && okB {
		return sa == sb
	}
	return reflect.DeepEqual(a, b)
}

func inSet(v any, set []any) bool {
	for _, candidate := range set {
		if equalValues(v, candidate) {
			return true
		}
	}
	return false
}
