// Package attrs reads values out of slog-style key/value attribute lists.
package attrs

// ExtractString returns the string value paired with key in a
// [key1, value1, key2, value2, ...] list, or "" when absent or not a string.
func ExtractString(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		if v, ok := attrs[i+1].(string); ok {
			return v
		}
	}
	return ""
}

// ExtractInt is ExtractString for integer values.
func ExtractInt(attrs []any, key string) (int, bool) {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		v, ok := attrs[i+1].(int)
		return v, ok
	}
	return 0, false
}
