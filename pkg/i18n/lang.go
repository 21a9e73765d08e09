package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better can be negotiated.
const DefaultLanguage = "en"

// Oversized Accept-Language headers are truncated before parsing.
const maxAcceptLanguageLength = 4096

// Matcher negotiates a supported language from BCP 47 tags.
type Matcher struct {
	supported []string
	matcher   language.Matcher
}

// NewMatcher builds a matcher; the first language is the fallback.
func NewMatcher(supported ...string) *Matcher {
	if len(supported) == 0 {
		supported = []string{DefaultLanguage}
	}
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = language.Make(s)
	}
	return &Matcher{supported: supported, matcher: language.NewMatcher(tags)}
}

// Default returns the fallback language.
func (m *Matcher) Default() string {
	return m.supported[0]
}

// Match returns the supported language closest to tag, or "" when nothing
// matches with at least low confidence. "es-MX" matches "es".
func (m *Matcher) Match(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(tag) > 35 {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	return m.match(t)
}

// MatchAcceptLanguage negotiates an Accept-Language header, honouring q
// values. It returns "" when no supported language is acceptable.
func (m *Matcher) MatchAcceptLanguage(header string) string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return ""
	}
	return m.match(prefs...)
}

func (m *Matcher) match(prefs ...language.Tag) string {
	_, idx, conf := m.matcher.Match(prefs...)
	if conf == language.No {
		return ""
	}
	return m.supported[idx]
}
