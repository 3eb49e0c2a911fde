package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// aliases maps alternative rule spellings to their canonical kinds.
var aliases = map[string]Kind{
	"alpha_num":     KindAlphaNumeric,
	"alpha_numeric": KindAlphaNumeric,
	"min_value":     KindMinValue,
	"max_value":     KindMaxValue,
	"not_in":        KindNotIn,
	"bool":          KindBoolean,
}

var kinds = map[Kind]struct{}{
	KindRequired: {}, KindFilled: {}, KindEmail: {}, KindMin: {}, KindMax: {},
	KindMinValue: {}, KindMaxValue: {}, KindNumeric: {}, KindAlpha: {}, KindAlphaNumeric: {},
	KindURL: {}, KindUUID: {}, KindDate: {}, KindBoolean: {}, KindArray: {}, KindObject: {},
	KindConfirmed: {}, KindDifferent: {}, KindSame: {}, KindUnique: {}, KindExists: {},
	KindIn: {}, KindNotIn: {}, KindRegex: {},
}

// Parse converts pipe syntax ("required|min:2|unique:users,email") into rules.
// Everything after "regex:" is taken verbatim, so a regex rule must come last
// when its pattern contains a pipe.
func Parse(s string) ([]Rule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var rules []Rule
	for s != "" {
		var part string
		if strings.HasPrefix(s, "regex:") {
			part, s = s, ""
		} else if i := strings.IndexByte(s, '|'); i >= 0 {
			part, s = s[:i], s[i+1:]
		} else {
			part, s = s, ""
		}

		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := parseRule(part)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// MustParse is like Parse but panics on error. Use it for static rule declarations.
func MustParse(s string) []Rule {
	rules, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return rules
}

// ParseRules parses a field-to-pipe-syntax map into Rules.
func ParseRules(m map[string]string) (Rules, error) {
	out := make(Rules, len(m))
	var errs []error
	for field, pipe := range m {
		rules, err := Parse(pipe)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
			continue
		}
		out[field] = rules
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func parseRule(part string) (Rule, error) {
	name, arg, hasArg := strings.Cut(part, ":")
	kind := Kind(name)
	if alias, ok := aliases[name]; ok {
		kind = alias
	}
	if _, ok := kinds[kind]; !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}

	switch kind {
	case KindMin, KindMax:
		n, err := strconv.Atoi(arg)
		if !hasArg || err != nil || n < 0 {
			return Rule{}, fmt.Errorf("%w: %s needs a non-negative integer", ErrInvalidRule, kind)
		}
		return Rule{Kind: kind, Params: []any{n}}, nil

	case KindMinValue, KindMaxValue:
		f, err := strconv.ParseFloat(arg, 64)
		if !hasArg || err != nil {
			return Rule{}, fmt.Errorf("%w: %s needs a number", ErrInvalidRule, kind)
		}
		return Rule{Kind: kind, Params: []any{f}}, nil

	case KindSame, KindDifferent:
		if arg == "" {
			return Rule{}, fmt.Errorf("%w: %s needs a field name", ErrInvalidRule, kind)
		}
		return Rule{Kind: kind, Params: []any{arg}}, nil

	case KindUnique, KindExists:
		table, column, ok := strings.Cut(arg, ",")
		if !ok {
			// "unique:users.email" is accepted as well.
			table, column, ok = strings.Cut(arg, ".")
		}
		if !ok || table == "" || column == "" {
			return Rule{}, fmt.Errorf("%w: %s needs table,column", ErrInvalidRule, kind)
		}
		return Rule{Kind: kind, Params: []any{table, column}}, nil

	case KindIn, KindNotIn:
		if !hasArg {
			return Rule{}, fmt.Errorf("%w: %s needs a value list", ErrInvalidRule, kind)
		}
		values := strings.Split(arg, ",")
		params := make([]any, len(values))
		for i, v := range values {
			params[i] = v
		}
		return Rule{Kind: kind, Params: params}, nil

	case KindRegex:
		if arg == "" {
			return Rule{}, fmt.Errorf("%w: regex needs a pattern", ErrInvalidRule)
		}
		return Rule{Kind: kind, Params: []any{arg}}, nil
	}

	if hasArg {
		return Rule{}, fmt.Errorf("%w: %s takes no parameters", ErrInvalidRule, kind)
	}
	return Rule{Kind: kind}, nil
}
