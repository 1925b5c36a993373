// Package dedupe provides order-preserving deduplication helpers.
package dedupe

import "strings"

// Strings removes duplicates and empty strings from a slice, trimming
// whitespace from each element. Order is preserved.
//
// Example:
//
//	Strings([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func Strings(values []string) []string {
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
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// ByKey removes elements whose key has already been seen. Order is preserved
// and the first occurrence wins. Elements with an empty key are dropped.
func ByKey[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return items
	}

	seen := make(map[string]struct{}, len(items))
	result := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			result = append(result, item)
		}
	}

	return result
}
