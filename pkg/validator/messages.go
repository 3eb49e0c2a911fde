package validator

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultMessages are the built-in templates. Placeholders:
// :attribute (display name), :Attribute (title-cased), :min, :max, :other, :values.
var defaultMessages = map[Kind]string{
	KindRequired:     "The :attribute field is required.",
	KindFilled:       "The :attribute field must have a value.",
	KindEmail:        "The :attribute must be a valid email address.",
	KindMinValue:     "The :attribute must be at least :min.",
	KindMaxValue:     "The :attribute may not be greater than :max.",
	KindNumeric:      "The :attribute must be a number.",
	KindAlpha:        "The :attribute may only contain letters.",
	KindAlphaNumeric: "The :attribute may only contain letters and numbers.",
	KindURL:          "The :attribute format is invalid.",
	KindUUID:         "The :attribute must be a valid UUID.",
	KindDate:         "The :attribute is not a valid date.",
	KindBoolean:      "The :attribute field must be true or false.",
	KindArray:        "The :attribute must be an array.",
	KindObject:       "The :attribute must be an object.",
	KindConfirmed:    "The :attribute confirmation does not match.",
	KindDifferent:    "The :attribute and :other must be different.",
	KindSame:         "The :attribute and :other must match.",
	KindUnique:       "The :attribute has already been taken.",
	KindExists:       "The selected :attribute is invalid.",
	KindIn:           "The selected :attribute is invalid.",
	KindNotIn:        "The selected :attribute is invalid.",
	KindRegex:        "The :attribute format is invalid.",
}

// min and max read differently depending on what was measured.
var sizeMessages = map[Kind]map[string]string{
	KindMin: {
		"string":  "The :attribute must be at least :min characters.",
		"array":   "The :attribute must have at least :min items.",
		"numeric": "The :attribute must be at least :min.",
	},
	KindMax: {
		"string":  "The :attribute may not be greater than :max characters.",
		"array":   "The :attribute may not have more than :max items.",
		"numeric": "The :attribute may not be greater than :max.",
	},
}

// displayName resolves the human-readable name of a field.
func displayName(field string, attributes map[string]string) string {
	if name, ok := attributes[field]; ok && name != "" {
		return name
	}
	return strings.ReplaceAll(field, "_", " ")
}

// messageFor picks the message template for a failed rule and fills its placeholders.
func messageFor(r Rule, field string, value any, cfg *callConfig) string {
	tmpl, ok := cfg.messages[field+"."+string(r.Kind)]
	if !ok {
		tmpl = r.Message
	}
	if tmpl == "" {
		tmpl = cfg.messages[string(r.Kind)]
	}
	if tmpl == "" {
		tmpl = defaultTemplate(r.Kind, value)
	}
	return fill(tmpl, r, field, cfg.attributes)
}

func defaultTemplate(kind Kind, value any) string {
	if variants, ok := sizeMessages[kind]; ok {
		switch {
		case isNumberKind(value):
			return variants["numeric"]
		case isArray(value) || isObject(value):
			return variants["array"]
		default:
			return variants["string"]
		}
	}
	if tmpl, ok := defaultMessages[kind]; ok {
		return tmpl
	}
	return "The :attribute is invalid."
}

func fill(tmpl string, r Rule, field string, attributes map[string]string) string {
	if !strings.Contains(tmpl, ":") {
		return tmpl
	}

	name := displayName(field, attributes)
	pairs := []string{":attribute", name}
	if strings.Contains(tmpl, ":Attribute") {
		// Casers are stateful; one per call keeps concurrent presence checks safe.
		pairs = append(pairs, ":Attribute", cases.Title(language.English).String(name))
	}

	switch r.Kind {
	case KindMin, KindMinValue:
		pairs = append(pairs, ":min", paramText(r, 0))
	case KindMax, KindMaxValue:
		pairs = append(pairs, ":max", paramText(r, 0))
	case KindSame, KindDifferent:
		pairs = append(pairs, ":other", displayName(paramText(r, 0), attributes))
	case KindIn, KindNotIn:
		values := make([]string, len(r.Params))
		for i, p := range r.Params {
			values[i] = fmt.Sprint(p)
		}
		pairs = append(pairs, ":values", strings.Join(values, ", "))
	}

	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func paramText(r Rule, i int) string {
	if i >= len(r.Params) {
		return ""
	}
	if s, ok := stringOf(r.Params[i]); ok {
		return s
	}
	return fmt.Sprint(r.Params[i])
}
