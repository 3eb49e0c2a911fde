package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rex/pkg/validator"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses pipe syntax", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse("required|min:2|max:255|unique:users,email|in:a,b")
		require.NoError(t, err)
		require.Equal(t, []validator.Rule{
			validator.Required(),
			validator.Min(2),
			validator.Max(255),
			validator.Unique("users", "email"),
			validator.In("a", "b"),
		}, rules)
	})

	t.Run("accepts dotted presence params and aliases", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse("exists:users.id|alpha_num|min_value:1.5")
		require.NoError(t, err)
		require.Equal(t, validator.Exists("users", "id"), rules[0])
		require.Equal(t, validator.KindAlphaNumeric, rules[1].Kind)
		require.Equal(t, validator.MinValue(1.5), rules[2])
	})

	t.Run("regex keeps pipes in its pattern", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse("required|regex:^(a|b)$")
		require.NoError(t, err)
		require.Len(t, rules, 2)
		require.Equal(t, []any{"^(a|b)$"}, rules[1].Params)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Parse("  ")
		require.NoError(t, err)
		require.Empty(t, rules)
	})

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Parse("required|nope")
		require.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()
		for _, pipe := range []string{"min", "min:x", "unique:users", "email:1", "same:"} {
			_, err := validator.Parse(pipe)
			require.ErrorIs(t, err, validator.ErrInvalidRule, pipe)
		}
	})

	t.Run("parse rules map", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.ParseRules(map[string]string{"name": "required|min:2"})
		require.NoError(t, err)
		require.Len(t, rules["name"], 2)

		_, err = validator.ParseRules(map[string]string{"name": "bogus"})
		require.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("rule string form", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "unique:users,email", validator.Unique("users", "email").String())
		require.Equal(t, "required", validator.Required().String())
	})
}
