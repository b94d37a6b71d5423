package sanitize

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_StripsTags(t *testing.T) {
	out := String("<script>alert(1)</script>")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.Equal(t, "alert(1)", out)
}

func TestString_NestedTagFragments(t *testing.T) {
	// Stripping the inner tag must not leave a reassembled outer tag.
	out := String("<scr<b>ipt>payload</scr</b>ipt>")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
}

func TestString_ControlCharacters(t *testing.T) {
	out := String("a\x00b\x07c\nd\te\rf")
	assert.Equal(t, "abc\nd\te\rf", out)
}

func TestString_Truncates(t *testing.T) {
	out := String(strings.Repeat("x", 20000))
	assert.Len(t, out, 10000)
}

func TestString_TruncationKeepsRuneBoundary(t *testing.T) {
	// A two-byte rune straddling the length cap must be dropped
	// whole, not split into a dangling byte.
	in := strings.Repeat("a", 9999) + "é" + strings.Repeat("b", 100)
	out := String(in)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("a", 9999), out)
	assert.Equal(t, out, String(out))

	// A multibyte rune ending exactly at the cap survives.
	in = strings.Repeat("a", 9998) + "é"
	out = String(in)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, in, out)
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 0.0, Number(math.NaN()))
	assert.Equal(t, 0.0, Number(math.Inf(1)))
	assert.Equal(t, 0.0, Number(math.Inf(-1)))
	assert.Equal(t, 0.0, Number(2e9))
	assert.Equal(t, 0.0, Number(-2e9))
	assert.Equal(t, 1e9, Number(1e9))
	assert.Equal(t, 30.0, Number(30))
}

func TestValue_Recursive(t *testing.T) {
	in := map[string]any{
		"<b>name</b>": "a<i>b</i>c",
		"nested": map[string]any{
			"count": math.Inf(1),
			"list":  []any{"<p>x</p>", math.NaN()},
		},
	}

	out, ok := Value(in).(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "abc", out["name"])
	nested := out["nested"].(map[string]any)
	assert.Equal(t, 0.0, nested["count"])
	assert.Equal(t, []any{"x", 0.0}, nested["list"])
}

func TestValue_Idempotent(t *testing.T) {
	in := map[string]any{
		"text":  "<div>hello</div>\x01",
		"num":   3.5,
		"items": []any{"<a>one</a>", 1e10},
	}

	once := Value(in)
	twice := Value(once)
	assert.Equal(t, once, twice)
}

func TestValue_CapsCollections(t *testing.T) {
	bigSlice := make([]any, 500)
	for i := range bigSlice {
		bigSlice[i] = float64(i)
	}
	out := Value(bigSlice).([]any)
	assert.Len(t, out, 100)
	// First elements are kept in order.
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 99.0, out[99])

	bigMap := make(map[string]any, 500)
	for i := 0; i < 500; i++ {
		bigMap[strings.Repeat("k", i+1)] = float64(i)
	}
	outMap := Value(bigMap).(map[string]any)
	assert.Len(t, outMap, 100)
}

func TestValue_DoesNotModifyInput(t *testing.T) {
	in := map[string]any{"text": "<b>hi</b>"}
	_ = Value(in)
	assert.Equal(t, "<b>hi</b>", in["text"])
}

func TestValue_IntegersBecomeFloats(t *testing.T) {
	assert.Equal(t, 30.0, Value(30))
	assert.Equal(t, 30.0, Value(int64(30)))
}
