package domain

import "strings"

// NormalizeAddress produces the canonical form used as a cache key:
// trimmed, internal whitespace collapsed, lowercased. Distinct normalized
// strings are distinct keys; no fuzzy matching is attempted.
func NormalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
