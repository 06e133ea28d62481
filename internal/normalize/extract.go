package normalize

import (
	"strconv"
	"strings"
)

// Defensive accessors for decoded provider JSON. Upstream payloads drift
// between camelCase and snake_case and routinely omit optional fields, so
// every accessor returns a zero value instead of failing.

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractFloat(m map[string]interface{}, key string) float64 {
	if v, ok := m[key]; ok {
		return parseFloat(v)
	}
	return 0
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mp, ok := v.(map[string]interface{}); ok {
			return mp
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arr, ok := v.([]interface{}); ok {
			return arr
		}
	}
	return nil
}

func extractStringArray(m map[string]interface{}, key string) []string {
	arr := extractArray(m, key)
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// firstString returns the first non-empty value among the given keys,
// covering providers that rename fields between API versions.
func firstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := extractString(m, key); s != "" {
			return s
		}
	}
	return ""
}

func firstFloat(m map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if f := parseFloat(v); f != 0 {
				return f
			}
		}
	}
	return 0
}

func parseFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	return 0
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return 0
}

// Slugify converts a school name to its URL slug ("Ohio State" -> "ohio-state")
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
