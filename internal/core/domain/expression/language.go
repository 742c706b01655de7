package expression

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Language string

const (
	Spanish Language = "es"
	English Language = "en"

	DefaultLanguage = Spanish
)

var knownLanguages = []Language{Spanish, English}

// ParseLanguage keeps the first two letters of raw, so "ES" and "español" both select Spanish.
func ParseLanguage(raw string) (Language, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if utf8.RuneCountInString(code) > 2 {
		code = string([]rune(code)[:2])
	}
	for _, lang := range knownLanguages {
		if Language(code) == lang {
			return lang, nil
		}
	}
	return "", fmt.Errorf("language %q, %w", raw, ErrUnsupportedLanguage)
}
