package validator

import (
	"fmt"
	"regexp"
)

// Kind identifies a validation rule.
type Kind string

// Supported rule kinds.
const (
	KindRequired     Kind = "required"
	KindFilled       Kind = "filled"
	KindEmail        Kind = "email"
	KindMin          Kind = "min"
	KindMax          Kind = "max"
	KindMinValue     Kind = "minValue"
	KindMaxValue     Kind = "maxValue"
	KindNumeric      Kind = "numeric"
	KindAlpha        Kind = "alpha"
	KindAlphaNumeric Kind = "alphaNumeric"
	KindURL          Kind = "url"
	KindUUID         Kind = "uuid"
	KindDate         Kind = "date"
	KindBoolean      Kind = "boolean"
	KindArray        Kind = "array"
	KindObject       Kind = "object"
	KindConfirmed    Kind = "confirmed"
	KindDifferent    Kind = "different"
	KindSame         Kind = "same"
	KindUnique       Kind = "unique"
	KindExists       Kind = "exists"
	KindIn           Kind = "in"
	KindNotIn        Kind = "notIn"
	KindRegex        Kind = "regex"
)

// Rule is a single declarative check applied to one field.
// Params are kind-specific: a length for min/max, a bound for minValue/maxValue,
// a field name for same/different, table and column for unique/exists,
// the literal set for in/notIn and the pattern for regex.
type Rule struct {
	Kind    Kind
	Params  []any
	Message string
}

// WithMessage returns a copy of the rule with a custom message.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// String renders the rule in pipe syntax, e.g. "min:2".
func (r Rule) String() string {
	if len(r.Params) == 0 {
		return string(r.Kind)
	}
	s := string(r.Kind) + ":"
	for i, p := range r.Params {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(p)
	}
	return s
}

// Rules maps field names to their ordered rule lists.
type Rules map[string][]Rule

// Field builds a rule list; it reads better than a slice literal in Rules() methods.
func Field(rules ...Rule) []Rule {
	return rules
}

func Required() Rule     { return Rule{Kind: KindRequired} }
func Filled() Rule       { return Rule{Kind: KindFilled} }
func Email() Rule        { return Rule{Kind: KindEmail} }
func Numeric() Rule      { return Rule{Kind: KindNumeric} }
func Alpha() Rule        { return Rule{Kind: KindAlpha} }
func AlphaNumeric() Rule { return Rule{Kind: KindAlphaNumeric} }
func URL() Rule          { return Rule{Kind: KindURL} }
func UUID() Rule         { return Rule{Kind: KindUUID} }
func Date() Rule         { return Rule{Kind: KindDate} }
func Boolean() Rule      { return Rule{Kind: KindBoolean} }
func Array() Rule        { return Rule{Kind: KindArray} }
func Object() Rule       { return Rule{Kind: KindObject} }
func Confirmed() Rule    { return Rule{Kind: KindConfirmed} }

// Min requires a length (runes for strings, elements for arrays and objects) of at least n.
func Min(n int) Rule { return Rule{Kind: KindMin, Params: []any{n}} }

// Max requires a length of at most n.
func Max(n int) Rule { return Rule{Kind: KindMax, Params: []any{n}} }

// MinValue requires a numeric value of at least v.
func MinValue(v float64) Rule { return Rule{Kind: KindMinValue, Params: []any{v}} }

// MaxValue requires a numeric value of at most v.
func MaxValue(v float64) Rule { return Rule{Kind: KindMaxValue, Params: []any{v}} }

// Same requires the value to equal the other field's value.
func Same(field string) Rule { return Rule{Kind: KindSame, Params: []any{field}} }

// Different requires the value to differ from the other field's value.
func Different(field string) Rule { return Rule{Kind: KindDifferent, Params: []any{field}} }

// Unique requires that no row in table has column equal to the value.
func Unique(table, column string) Rule {
	return Rule{Kind: KindUnique, Params: []any{table, column}}
}

// Exists requires a row in table with column equal to the value.
func Exists(table, column string) Rule {
	return Rule{Kind: KindExists, Params: []any{table, column}}
}

// In requires the value to be one of values.
func In(values ...any) Rule { return Rule{Kind: KindIn, Params: values} }

// NotIn requires the value to be none of values.
func NotIn(values ...any) Rule { return Rule{Kind: KindNotIn, Params: values} }

// Regex requires the value to match pattern.
// Accepts a pattern string or a compiled *regexp.Regexp.
func Regex[P string | *regexp.Regexp](pattern P) Rule {
	return Rule{Kind: KindRegex, Params: []any{pattern}}
}
