package i18n

import "errors"

var (
	ErrNilAdapter           = errors.New("translation adapter is nil")
	ErrEmptyLanguageCode    = errors.New("empty language code in translations")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
	ErrInvalidStructure     = errors.New("invalid translation structure")
	ErrFailedToReadDir      = errors.New("failed to read translations directory")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrNoTranslationFiles   = errors.New("no translation files found")
	ErrLoadingCancelled     = errors.New("loading translations cancelled")
)
