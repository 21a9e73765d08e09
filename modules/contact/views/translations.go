package views

import "embed"

// Translations holds the en and es YAML files under TranslationsDir.
//
//go:embed translations/*.yaml
var Translations embed.FS

// TranslationsDir is the directory inside Translations.
const TranslationsDir = "translations"
