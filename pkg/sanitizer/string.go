package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	stripPolicy     = bluemonday.StrictPolicy()
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// MaxLength truncates a string to at most maxLen characters.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen])
}

// Truncate returns a transform that caps input at maxLen characters,
// suitable for Apply and Compose pipelines.
func Truncate(maxLen int) func(string) string {
	return func(s string) string {
		return MaxLength(s, maxLen)
	}
}

// RemoveExtraWhitespace collapses whitespace runs into a single space and trims.
func RemoveExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars removes control characters, keeping line breaks and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// NormalizeNewlines converts CRLF and CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// StripHTML reduces markup to its plain text. Script and style contents are
// dropped and entities are decoded.
func StripHTML(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// SingleLine converts a multi-line string to a single line by replacing
// line breaks with spaces and normalizing whitespace.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return RemoveExtraWhitespace(s)
}
