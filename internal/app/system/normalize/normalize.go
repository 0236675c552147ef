// Package normalize holds small input-normalization helpers shared by the
// stores and handlers.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name collapses interior whitespace runs and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone trims a phone number; formatting is otherwise preserved as typed.
func Phone(s string) string {
	return strings.TrimSpace(s)
}
