package models

import "golang.org/x/text/language"

// DefaultLocale is the locale used when a project context does not name one
// or names one that is not supported.
const DefaultLocale = "en"

// LangNameMap maps supported language codes to their display names.
var LangNameMap = map[string]string{
	"en": "English",
	"ko": "Korean (한국어)",
	"ja": "Japanese (日本語)",
	"zh": "Chinese (中文)",
	"es": "Spanish (Español)",
	"fr": "French (Français)",
	"de": "German (Deutsch)",
}

// SupportedLanguages returns the supported language codes in display order.
func SupportedLanguages() []string {
	return []string{"en", "ko", "ja", "zh", "es", "fr", "de"}
}

// GetLanguageName returns the display name for a language code.
// Returns "English" if the code is not found.
func GetLanguageName(code string) string {
	if name, ok := LangNameMap[code]; ok {
		return name
	}
	return LangNameMap[DefaultLocale]
}

// IsValidLanguageCode reports whether code is an exact supported language code.
func IsValidLanguageCode(code string) bool {
	_, ok := LangNameMap[code]
	return ok
}

// NormalizeLocale reduces a BCP 47 tag such as "zh-Hans-CN" or "pt_BR" to its
// base language and falls back to DefaultLocale when the tag is empty,
// malformed, or not supported.
func NormalizeLocale(tag string) string {
	if tag == "" {
		return DefaultLocale
	}
	t, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale
	}
	base, conf := t.Base()
	if conf == language.No {
		return DefaultLocale
	}
	if code := base.String(); IsValidLanguageCode(code) {
		return code
	}
	return DefaultLocale
}
