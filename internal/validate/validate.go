// Package validate runs declarative field validation before business
// logic sees a request. Rules are pure predicates; evaluation order is
// the declaration order and every failing rule produces a message.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Rule identifiers understood by Fields.
const (
	RuleRequired = "required"
	RuleEmail    = "email"
	RulePassword = "password"
)

// PasswordMinLength is the canonical policy: at least 8 characters
// containing at least one letter and one digit.
const PasswordMinLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field declares one input value and the rules it must satisfy.
type Field struct {
	Name  string
	Value any
	Rules []string
}

// Fields evaluates each field's rules in declaration order and returns
// every violation message. An empty slice means the input is valid.
func Fields(fields ...Field) []string {
	var violations []string
	for _, f := range fields {
		for _, rule := range f.Rules {
			if msg := check(f.Name, f.Value, rule); msg != "" {
				violations = append(violations, msg)
			}
		}
	}
	return violations
}

func check(name string, value any, rule string) string {
	switch rule {
	case RuleRequired:
		if isBlank(value) {
			return fmt.Sprintf("%s is required", name)
		}
	case RuleEmail:
		if s, ok := value.(string); ok && s != "" && !emailPattern.MatchString(s) {
			return fmt.Sprintf("%s must be a valid email address", name)
		}
	case RulePassword:
		if s, ok := value.(string); ok && s != "" && !strongEnough(s) {
			return fmt.Sprintf(
				"%s must be at least %d characters and contain both letters and numbers",
				name, PasswordMinLength,
			)
		}
	}
	return ""
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) == ""
}

func strongEnough(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
