package models

import (
	"slices"
	"testing"
)

func TestLanguageTable(t *testing.T) {
	t.Parallel()

	codes := SupportedLanguages()
	if codes[0] != DefaultLocale {
		t.Errorf("first supported language = %q, want %q", codes[0], DefaultLocale)
	}
	if len(codes) != len(LangNameMap) {
		t.Fatalf("%d supported codes but %d display names", len(codes), len(LangNameMap))
	}
	for _, code := range codes {
		if !IsValidLanguageCode(code) {
			t.Errorf("%q is listed but not valid", code)
		}
		if LangNameMap[code] == "" {
			t.Errorf("%q has no display name", code)
		}
	}

	sorted := slices.Sorted(slices.Values(codes))
	if !slices.Equal(sorted, []string{"de", "en", "es", "fr", "ja", "ko", "zh"}) {
		t.Errorf("supported codes = %v", sorted)
	}
}

func TestLanguageLookup(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		name  string
		valid bool
	}{
		"ko":     {"Korean (한국어)", true},
		"ja":     {"Japanese (日本語)", true},
		"de":     {"German (Deutsch)", true},
		"en":     {"English", true},
		"KO":     {"English", false},
		"eng":    {"English", false},
		"korean": {"English", false},
		"":       {"English", false},
	}

	for code, want := range cases {
		if got := GetLanguageName(code); got != want.name {
			t.Errorf("GetLanguageName(%q) = %q, want %q", code, got, want.name)
		}
		if got := IsValidLanguageCode(code); got != want.valid {
			t.Errorf("IsValidLanguageCode(%q) = %v, want %v", code, got, want.valid)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]string{
		"":           "en",
		"en":         "en",
		"zh":         "zh",
		"zh-CN":      "zh",
		"zh-Hans-CN": "zh",
		"ko-KR":      "ko",
		"de-AT":      "de",
		"pt-BR":      "en",
		"not a tag":  "en",
	} {
		if got := NormalizeLocale(tag); got != want {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", tag, got, want)
		}
	}
}
