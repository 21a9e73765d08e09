package i18n

import (
	"context"
	"path"
	"strings"
)

// Parser turns file content into lang → nested translations.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
}

// ParserForFile picks a parser by extension, or nil if none matches.
func ParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "json":
		return JSONParser{}
	case "yaml", "yml":
		return YAMLParser{}
	}
	return nil
}

// splitLanguages checks that every top-level value is a map keyed by language.
func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		m, ok := val.(map[string]any)
		if !ok {
			return nil, &structureError{lang: lang, got: val}
		}
		result[lang] = m
	}
	return result, nil
}
