// Package strings holds small helpers for normalizing user-supplied lists.
package strings

import (
	"strings"
)

// DedupeAndTrim trims each element, drops empties and exact duplicates.
// Order is preserved.
//
//	DedupeAndTrim([]string{"  Anxiety ", "Depression", "Anxiety", "", "  "})
//	// []string{"Anxiety", "Depression"}
func DedupeAndTrim(values []string) []string {
	return dedupe(values, func(s string) string { return s })
}

// DedupeFold is like DedupeAndTrim but compares case-insensitively and keeps
// the first spelling it sees.
//
//	DedupeFold([]string{" Grief Counseling", "grief counseling", "PTSD"})
//	// []string{"Grief Counseling", "PTSD"}
func DedupeFold(values []string) []string {
	return dedupe(values, strings.ToLower)
}

func dedupe(values []string, key func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		k := key(trimmed)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, trimmed)
	}

	return result
}
