package validator

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for the validator package.
var (
	// ErrValidationFailed is matched by every non-empty Errors value via errors.Is.
	ErrValidationFailed = errors.New("validator: validation failed")

	// ErrUnknownRule is returned by Parse for a rule name it does not recognize.
	ErrUnknownRule = errors.New("validator: unknown rule")

	// ErrInvalidRule is returned when a rule carries malformed parameters.
	ErrInvalidRule = errors.New("validator: invalid rule parameters")

	// ErrPresenceCheckerMissing is returned when unique/exists rules run without a PresenceChecker.
	ErrPresenceCheckerMissing = errors.New("validator: presence checker not configured")
)

// Errors maps a field name to the ordered list of messages for every rule it violated.
type Errors map[string][]string

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ErrValidationFailed.Error()
	}
	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	b.WriteString(": ")
	for i, field := range e.Fields() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[field], ", "))
	}
	return b.String()
}

// Is reports ErrValidationFailed as the category of every Errors value.
func (e Errors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Add appends a message for the field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether the field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message for the field, or an empty string.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the failed field names in sorted order.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

// IsValidationError reports whether err carries field validation errors.
func IsValidationError(err error) bool {
	_, ok := AsErrors(err)
	return ok
}

// AsErrors extracts Errors from err if present.
func AsErrors(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
