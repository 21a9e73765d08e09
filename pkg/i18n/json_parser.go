package i18n

import (
	"context"
	"encoding/json"
	"errors"
)

// JSONParser parses {"en": {"contact": {"title": "..."}}}.
type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return splitLanguages(data)
}
