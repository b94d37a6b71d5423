package speech

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	boldPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern  = regexp.MustCompile(`\*([^*]+)\*`)
	underPattern   = regexp.MustCompile(`_([^_]+)_`)
	headerPattern  = regexp.MustCompile(`#+\s*`)
	listPattern    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	blankPattern   = regexp.MustCompile(`\n\s*\n`)
	stripperPolicy = bluemonday.StrictPolicy()
)

// CleanForSpeech strips HTML and common markdown syntax so the result
// reads naturally when spoken. Bold and italic markers are unwrapped,
// headers and list bullets are removed, and runs of blank lines
// collapse to a single newline.
func CleanForSpeech(text string) string {
	// The strict policy HTML-escapes the surviving text; undo that so
	// the TTS engine never reads entities aloud.
	cleaned := html.UnescapeString(stripperPolicy.Sanitize(text))

	cleaned = boldPattern.ReplaceAllString(cleaned, "$1")
	cleaned = italicPattern.ReplaceAllString(cleaned, "$1")
	cleaned = underPattern.ReplaceAllString(cleaned, "$1")
	cleaned = headerPattern.ReplaceAllString(cleaned, "")
	cleaned = listPattern.ReplaceAllString(cleaned, "")
	cleaned = blankPattern.ReplaceAllString(cleaned, "\n")

	return strings.TrimSpace(cleaned)
}
