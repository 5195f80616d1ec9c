package normalization

import (
	"strconv"
	"strings"
)

// AsString trims strings and formats numbers and booleans. Other values yield "".
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// StringMap flattens a decoded JSON object into string values, dropping entries
// that are empty or not scalar.
func StringMap(value any) map[string]string {
	source, ok := value.(map[string]any)
	if !ok || len(source) == 0 {
		return nil
	}
	out := make(map[string]string, len(source))
	for key, raw := range source {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if v := AsString(raw); v != "" {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MapFromPayload unwraps {"data": {...}} envelopes into the inner object.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// FirstString returns the first key of m holding a non-empty scalar.
func FirstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := AsString(m[key]); v != "" {
			return v
		}
	}
	return ""
}
