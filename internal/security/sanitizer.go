package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString trims and bounds free-form user input.
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 2000 {
		input = input[:2000]
	}

	return input
}

// SanitizeHTML removes all HTML tags. Question text, options and
// explanations pass through here before being persisted.
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText is the combined treatment applied to question fields.
func SanitizeText(input string) string {
	return SanitizeString(SanitizeHTML(input))
}
