// Package jsonutil provides helpers for loosely typed option maps
// (layout options, widget values) and JSON encoding with context.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// MarshalIndentWithContext encodes v as indented JSON and wraps any error
// with the provided context message.
func MarshalIndentWithContext(v any, context string) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return data, nil
}

// Has reports whether key is present in m, whatever its value.
func Has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

// HasAll reports whether every key is present in m.
func HasAll(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if !Has(m, k) {
			return false
		}
	}
	return true
}

// GetString safely extracts a string value from m.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]any, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// GetBool reports whether m[key] is truthy: true, a non-zero number, a
// non-empty list or object, or a non-empty string other than one cast
// parses as false ("false", "0", "f" and the like).
func GetBool(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	switch v := v.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false
		}
		if b, err := cast.ToBoolE(s); err == nil {
			return b
		}
		return true
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// GetFloat extracts a numeric value from m. ok is false when the key is
// missing or the value is not convertible.
func GetFloat(m map[string]any, key string) (float64, bool) {
	v, present := m[key]
	if !present || v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToString converts an interface value to a string representation.
// Handles string, float64 (formatted as integer), bool, and other types.
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
