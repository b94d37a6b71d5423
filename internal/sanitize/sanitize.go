// Package sanitize normalizes untrusted nested input before it reaches
// any validation rule.
package sanitize

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	maxStringLength = 10000
	maxItems        = 100
	maxMagnitude    = 1e9
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Value recursively sanitizes v and returns a value of the same shape.
// The function is pure and idempotent; the input is never modified.
func Value(v any) any {
	switch typed := v.(type) {
	case string:
		return String(typed)
	case float64:
		return Number(typed)
	case float32:
		return Number(float64(typed))
	case int:
		return Number(float64(typed))
	case int64:
		return Number(float64(typed))
	case map[string]any:
		return sanitizeMap(typed)
	case []any:
		return sanitizeSlice(typed)
	default:
		return v
	}
}

// String strips HTML-like tags and control characters, then truncates
// to the maximum length.
func String(s string) string {
	// Repeat tag removal until stable so stripping cannot expose a
	// new tag formed by adjacent fragments.
	for {
		stripped := tagPattern.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 32 || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	if len(s) > maxStringLength {
		// Cut on a rune boundary: slicing mid-rune would leave a
		// dangling byte that a later pass re-encodes differently.
		cut := maxStringLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

// Number maps NaN and infinities to 0 and clamps magnitudes above 1e9
// to 0.
func Number(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if math.Abs(f) > maxMagnitude {
		return 0
	}
	return f
}

func sanitizeMap(m map[string]any) map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxItems {
		keys = keys[:maxItems]
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[String(k)] = Value(m[k])
	}
	return out
}

func sanitizeSlice(s []any) []any {
	if len(s) > maxItems {
		s = s[:maxItems]
	}
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = Value(v)
	}
	return out
}
