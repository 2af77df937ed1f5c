package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	t.Run("empty email fails required and reports a message", func(t *testing.T) {
		msgs := Fields(Field{Name: "email", Value: "", Rules: []string{RuleRequired, RuleEmail}})
		assert.NotEmpty(t, msgs)
		assert.Equal(t, []string{"email is required"}, msgs)
	})

	t.Run("valid email passes", func(t *testing.T) {
		msgs := Fields(Field{Name: "email", Value: "a@b.com", Rules: []string{RuleRequired, RuleEmail}})
		assert.Empty(t, msgs)
	})

	t.Run("malformed email fails", func(t *testing.T) {
		msgs := Fields(Field{Name: "email", Value: "not-an-email", Rules: []string{RuleRequired, RuleEmail}})
		assert.Equal(t, []string{"email must be a valid email address"}, msgs)
	})

	t.Run("whitespace-only value fails required", func(t *testing.T) {
		msgs := Fields(Field{Name: "name", Value: "   ", Rules: []string{RuleRequired}})
		assert.Equal(t, []string{"name is required"}, msgs)
	})

	t.Run("nil value fails required", func(t *testing.T) {
		msgs := Fields(Field{Name: "name", Value: nil, Rules: []string{RuleRequired}})
		assert.Equal(t, []string{"name is required"}, msgs)
	})

	t.Run("short password fails", func(t *testing.T) {
		msgs := Fields(Field{Name: "password", Value: "123", Rules: []string{RuleRequired, RulePassword}})
		assert.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "at least 8 characters")
	})

	t.Run("long password without digits fails", func(t *testing.T) {
		msgs := Fields(Field{Name: "password", Value: "onlyletters", Rules: []string{RulePassword}})
		assert.Len(t, msgs, 1)
	})

	t.Run("long password without letters fails", func(t *testing.T) {
		msgs := Fields(Field{Name: "password", Value: "12345678901", Rules: []string{RulePassword}})
		assert.Len(t, msgs, 1)
	})

	t.Run("mixed password passes", func(t *testing.T) {
		msgs := Fields(Field{Name: "password", Value: "abc12345", Rules: []string{RuleRequired, RulePassword}})
		assert.Empty(t, msgs)
	})

	t.Run("all failing messages are returned in declaration order", func(t *testing.T) {
		msgs := Fields(
			Field{Name: "email", Value: "bad", Rules: []string{RuleRequired, RuleEmail}},
			Field{Name: "password", Value: "short1", Rules: []string{RuleRequired, RulePassword}},
		)
		assert.Equal(t, []string{
			"email must be a valid email address",
			"password must be at least 8 characters and contain both letters and numbers",
		}, msgs)
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		input := []Field{
			{Name: "email", Value: "", Rules: []string{RuleRequired, RuleEmail}},
			{Name: "password", Value: "x", Rules: []string{RulePassword}},
		}
		assert.Equal(t, Fields(input...), Fields(input...))
	})
}
