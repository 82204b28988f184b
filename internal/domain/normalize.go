package domain

import (
	"strings"
)

// Normalize prepares free text for storage:
//   - every run of Unicode whitespace (spaces, tabs, newlines) becomes one ASCII space
//   - leading and trailing whitespace is removed
//
// Case, diacritics and punctuation are preserved.
func Normalize(text string) string {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	}
	return strings.Join(fields, " ")
}

// StrPtr returns a pointer to s, or nil when s is empty.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
