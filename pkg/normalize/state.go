// Package normalize canonicalizes protocol state strings and interface
// names so that values reported by different device OS families compare
// equal. All functions are pure and idempotent.
package normalize

import "strings"

// State returns the canonical form of a protocol adjacency state.
//
// Empty input yields "". Otherwise the value is lower-cased and trimmed.
// Compound states with exactly one '/' separator (adjacency + role, e.g.
// "FULL/DR") are split; a right side that is empty or all dashes is
// dropped ("full/-" and "full/" both become "full"). States with zero or
// more than one '/' are returned whole.
func State(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if strings.Count(s, "/") != 1 {
		return s
	}

	idx := strings.Index(s, "/")
	left := strings.TrimSpace(s[:idx])
	right := strings.TrimSpace(s[idx+1:])
	right = strings.TrimRight(right, "/")

	if right == "" || strings.Trim(right, "-") == "" {
		return left
	}
	return left + "/" + right
}
