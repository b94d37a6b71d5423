package observability

import "strings"

const redactionMarker = "***REDACTED***"

// sensitivePatterns are substrings that mark a key or string value as
// sensitive. Matching is case-insensitive.
var sensitivePatterns = []string{
	"password", "token", "secret", "key", "auth",
	"ssn", "credit", "card", "cvv", "pin",
}

// Redact recursively replaces sensitive keys and string values with a
// redaction marker. The input is never modified; maps and slices are
// copied.
func Redact(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			if isSensitive(key) {
				out[key] = redactionMarker
				continue
			}
			out[key] = Redact(val)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(typed))
		for key, val := range typed {
			if isSensitive(key) {
				out[key] = redactionMarker
				continue
			}
			if isSensitive(val) {
				out[key] = redactionMarker
				continue
			}
			out[key] = val
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = Redact(val)
		}
		return out
	case string:
		if isSensitive(typed) {
			return redactionMarker
		}
		return typed
	default:
		return value
	}
}

func isSensitive(s string) bool {
	lower := strings.ToLower(s)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
