package validator

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Validator evaluates Rules against input maps.
// It is stateless between calls and safe for concurrent use.
type Validator struct {
	presence   PresenceChecker
	messages   map[string]string
	attributes map[string]string
}

// Option configures a Validator.
type Option func(*Validator)

// WithPresenceChecker sets the collaborator used by unique and exists rules.
func WithPresenceChecker(pc PresenceChecker) Option {
	return func(v *Validator) {
		v.presence = pc
	}
}

// WithMessages sets validator-wide message overrides keyed by "kind" or "field.kind".
func WithMessages(m map[string]string) Option {
	return func(v *Validator) {
		maps.Copy(v.messages, m)
	}
}

// WithAttributes sets validator-wide display names for fields.
func WithAttributes(m map[string]string) Option {
	return func(v *Validator) {
		maps.Copy(v.attributes, m)
	}
}

// New creates a Validator.
//
// Example:
//
//	v := validator.New(validator.WithPresenceChecker(db.NewPresence(pool)))
//	err := v.Validate(ctx, input, validator.Rules{
//	    "email": validator.Field(validator.Required(), validator.Email(), validator.Unique("users", "email")),
//	})
func New(opts ...Option) *Validator {
	v := &Validator{
		messages:   make(map[string]string),
		attributes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// callConfig holds per-call message and attribute overrides merged over the validator's.
type callConfig struct {
	messages   map[string]string
	attributes map[string]string
}

// ValidateOption configures a single Validate call.
type ValidateOption func(*callConfig)

// Messages overrides messages for one call. Keys are "field.kind" or "kind".
func Messages(m map[string]string) ValidateOption {
	return func(c *callConfig) {
		maps.Copy(c.messages, m)
	}
}

// Attributes overrides field display names for one call.
func Attributes(m map[string]string) ValidateOption {
	return func(c *callConfig) {
		maps.Copy(c.attributes, m)
	}
}

// Validate checks input against rules.
// It returns nil when every rule passes and Errors listing every violation otherwise;
// a field absent from input skips all of its rules except required.
// unique and exists rules run concurrently; an error from the PresenceChecker
// or from a malformed rule is returned as is and is not a validation failure.
func (v *Validator) Validate(ctx context.Context, input map[string]any, rules Rules, opts ...ValidateOption) error {
	cfg := &callConfig{
		messages:   maps.Clone(v.messages),
		attributes: maps.Clone(v.attributes),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	fields := slices.Sorted(maps.Keys(rules))

	// One slot per rule keeps messages in declaration order even when
	// presence checks finish out of order. Slots are allocated up front so
	// goroutines only ever write their own element.
	slots := make(map[string][]string, len(fields))
	for _, field := range fields {
		slots[field] = make([]string, len(rules[field]))
	}

	g, gctx := errgroup.WithContext(ctx)
	var ruleErr error

loop:
	for _, field := range fields {
		list := rules[field]
		value, present := input[field]
		present = present && value != nil

		for i, r := range list {
			if !present && r.Kind != KindRequired {
				continue
			}

			if r.Kind == KindUnique || r.Kind == KindExists {
				if v.presence == nil {
					ruleErr = ErrPresenceCheckerMissing
					break loop
				}
				table, column, err := presenceParams(r)
				if err != nil {
					ruleErr = err
					break loop
				}
				g.Go(func() error {
					found, err := v.presence.Exists(gctx, table, column, value)
					if err != nil {
						return fmt.Errorf("validator: %s check on %s.%s: %w", r.Kind, table, column, err)
					}
					if found == (r.Kind == KindUnique) {
						slots[field][i] = messageFor(r, field, value, cfg)
					}
					return nil
				})
				continue
			}

			ok, err := check(r, field, value, present, input)
			if err != nil {
				ruleErr = fmt.Errorf("%s: %w", field, err)
				break loop
			}
			if !ok {
				slots[field][i] = messageFor(r, field, value, cfg)
			}
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if ruleErr != nil {
		return ruleErr
	}

	errs := make(Errors)
	for _, field := range fields {
		for _, msg := range slots[field] {
			if msg != "" {
				errs.Add(field, msg)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// check evaluates a synchronous rule.
func check(r Rule, field string, value any, present bool, input map[string]any) (bool, error) {
	switch r.Kind {
	case KindRequired:
		return present, nil
	case KindFilled:
		return !isBlank(value), nil
	case KindEmail:
		return isEmail(value), nil
	case KindURL:
		return isURL(value), nil
	case KindUUID:
		return isUUID(value), nil
	case KindDate:
		return isDate(value), nil
	case KindBoolean:
		return isBoolean(value), nil
	case KindArray:
		return isArray(value), nil
	case KindObject:
		return isObject(value), nil
	case KindNumeric:
		return isNumeric(value), nil
	case KindAlpha:
		return isAlpha(value), nil
	case KindAlphaNumeric:
		return isAlphaNumeric(value), nil

	case KindMin, KindMax:
		bound, err := paramNumber(r)
		if err != nil {
			return false, err
		}
		size, ok := sizeOf(value)
		if !ok {
			return false, nil
		}
		if r.Kind == KindMin {
			return size >= bound, nil
		}
		return size <= bound, nil

	case KindMinValue, KindMaxValue:
		bound, err := paramNumber(r)
		if err != nil {
			return false, err
		}
		n, ok := numberOf(value)
		if !ok {
			return false, nil
		}
		if r.Kind == KindMinValue {
			return n >= bound, nil
		}
		return n <= bound, nil

	case KindConfirmed:
		other, ok := input[field+"_confirmation"]
		return ok && other != nil && equalValues(value, other), nil

	case KindSame, KindDifferent:
		if len(r.Params) == 0 {
			return false, fmt.Errorf("%w: %s needs a field name", ErrInvalidRule, r.Kind)
		}
		otherField, _ := stringOf(r.Params[0])
		same := equalValues(value, input[otherField])
		if r.Kind == KindSame {
			return same, nil
		}
		return !same, nil

	case KindIn:
		return inSet(value, r.Params), nil
	case KindNotIn:
		return !inSet(value, r.Params), nil

	case KindRegex:
		if len(r.Params) == 0 {
			return false, fmt.Errorf("%w: regex needs a pattern", ErrInvalidRule)
		}
		re, err := compilePattern(r.Params[0])
		if err != nil {
			return false, err
		}
		s, ok := stringOf(value)
		return ok && re.MatchString(s), nil
	}

	return false, fmt.Errorf("%w: %q", ErrUnknownRule, r.Kind)
}

func paramNumber(r Rule) (float64, error) {
	if len(r.Params) == 0 {
		return 0, fmt.Errorf("%w: %s needs a bound", ErrInvalidRule, r.Kind)
	}
	switch p := r.Params[0].(type) {
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s bound %q", ErrInvalidRule, r.Kind, p)
		}
		return f, nil
	default:
		f, ok := numberOf(p)
		if !ok {
			return 0, fmt.Errorf("%w: %s bound %v", ErrInvalidRule, r.Kind, p)
		}
		return f, nil
	}
}

func presenceParams(r Rule) (string, string, error) {
	if len(r.Params) != 2 {
		return "", "", fmt.Errorf("%w: %s needs table and column", ErrInvalidRule, r.Kind)
	}
	table, okT := r.Params[0].(string)
	column, okC := r.Params[1].(string)
	if !okT || !okC || table == "" || column == "" {
		return "", "", fmt.Errorf("%w: %s needs table and column", ErrInvalidRule, r.Kind)
	}
	return table, column, nil
}
