// Package validator provides declarative, non-fail-fast validation of request input.
//
// A rule set maps field names to ordered rule lists. Validate evaluates every rule of
// every field and reports all violations at once, so a single field may carry several
// messages:
//
//	rules := validator.Rules{
//	    "name":     validator.Field(validator.Required(), validator.Min(2), validator.Max(255)),
//	    "email":    validator.Field(validator.Required(), validator.Email(), validator.Unique("users", "email")),
//	    "password": validator.MustParse("required|min:8|confirmed"),
//	}
//
//	v := validator.New(validator.WithPresenceChecker(checker))
//	if err := v.Validate(ctx, input, rules); err != nil {
//	    if errs, ok := validator.AsErrors(err); ok {
//	        // errs["password"] == []string{"The password must be at least 8 characters.", ...}
//	    }
//	    return err // presence checker failure
//	}
//
// # Presence rules
//
// unique and exists query a [PresenceChecker]. They run concurrently with errgroup and
// their messages are still reported in declaration order. Wrap a checker with
// [CachedPresence] to deduplicate lookups through pkg/cache.
//
// # Messages
//
// Messages resolve in this order: a "field.kind" override, the rule's own message,
// a "kind" override, the built-in template. Templates accept :attribute, :Attribute,
// :min, :max, :other and :values.
//
// # Required and empty strings
//
// required rejects only absent and nil values. An empty string is present; reject it
// with filled, or let min and the format rules fail it.
package validator
