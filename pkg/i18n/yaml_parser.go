package i18n

import (
	"context"
	"errors"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses files of the form
//
//	en:
//	  contact:
//	    title: Contact Form
type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	// yaml.v3 decodes nested mappings as map[string]any.
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return splitLanguages(data)
}
